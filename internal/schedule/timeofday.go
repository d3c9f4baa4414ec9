// Package schedule models a provider's weekly recurring availability:
// weekdays, wall-clock times of day, working-hours entries, and local
// calendar dates. All time arithmetic is local wall clock; nothing in
// this package carries a timezone.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is a count of minutes since local midnight (0-1439).
type TimeOfDay int

// MinutesPerDay is the number of minutes in a calendar day.
const MinutesPerDay = 24 * 60

// ParseTimeOfDay parses "h:mm" (24-hour) or "h:mm am/pm" clock strings.
// Parsing is tolerant of 12-hour wrap: "12:00 am" is midnight and
// "12:00 pm" is noon. Case and surrounding whitespace are ignored.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	if raw == "" {
		return 0, fmt.Errorf("schedule: empty time string")
	}

	meridiem := ""
	for _, suffix := range []string{"am", "pm", "a.m.", "p.m."} {
		if strings.HasSuffix(raw, suffix) {
			meridiem = string(suffix[0]) + "m"
			raw = strings.TrimSpace(strings.TrimSuffix(raw, suffix))
			break
		}
	}

	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("schedule: malformed time %q", s)
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("schedule: malformed hour in %q", s)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("schedule: malformed minute in %q", s)
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("schedule: minute out of range in %q", s)
	}

	switch meridiem {
	case "am":
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("schedule: hour out of range in %q", s)
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("schedule: hour out of range in %q", s)
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour < 0 || hour > 23 {
			return 0, fmt.Errorf("schedule: hour out of range in %q", s)
		}
	}

	return TimeOfDay(hour*60 + minute), nil
}

// MustParseTimeOfDay is ParseTimeOfDay that panics on error. Intended for
// constants and tests.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Format renders the canonical slot label: no leading zero on the hour,
// two-digit minutes, lowercase meridiem. E.g. 600 -> "10:00 am",
// 0 -> "12:00 am", 720 -> "12:00 pm".
func (t TimeOfDay) Format() string {
	hour := int(t) / 60
	minute := int(t) % 60

	meridiem := "am"
	if hour >= 12 {
		meridiem = "pm"
	}
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, minute, meridiem)
}

// String implements fmt.Stringer using the canonical label.
func (t TimeOfDay) String() string { return t.Format() }

// Valid reports whether t falls within a calendar day.
func (t TimeOfDay) Valid() bool { return t >= 0 && t < MinutesPerDay }

// LabelsEqual compares two clock labels by re-parsing them to minutes, so
// "09:00 am" and "9:00 am" compare equal. Unparseable labels never match.
func LabelsEqual(a, b string) bool {
	ta, err := ParseTimeOfDay(a)
	if err != nil {
		return false
	}
	tb, err := ParseTimeOfDay(b)
	if err != nil {
		return false
	}
	return ta == tb
}
