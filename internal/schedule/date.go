package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a local calendar date. It is never derived through UTC
// conversion: a naive time.Parse of "YYYY-MM-DD" yields a UTC instant,
// which shifts the day by one in timezones west of UTC. Every path that
// crosses a string boundary goes through ParseDate/String instead.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a "YYYY-MM-DD" string by splitting it into integer
// fields and reconstructing the date locally.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("schedule: malformed date %q", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("schedule: malformed year in %q", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, fmt.Errorf("schedule: malformed month in %q", s)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("schedule: malformed day in %q", s)
	}
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("schedule: month out of range in %q", s)
	}
	d := Date{Year: year, Month: time.Month(month), Day: day}
	// time.Date normalizes overflow (Feb 30 -> Mar 2); reject anything
	// that doesn't round-trip.
	if norm := DateFromTime(d.Time()); norm != d {
		return Date{}, fmt.Errorf("schedule: invalid calendar date %q", s)
	}
	return d, nil
}

// MustParseDate is ParseDate that panics on error.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateFromTime extracts the local calendar date from a time.Time.
func DateFromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String renders the date as "YYYY-MM-DD".
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns local midnight of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
}

// Weekday returns the date's weekday.
func (d Date) Weekday() WeekDay {
	return WeekDayFromTime(d.Time().Weekday())
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return DateFromTime(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// MarshalJSON encodes the date as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string via ParseDate.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
