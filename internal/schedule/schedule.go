package schedule

import (
	"fmt"
	"strings"
	"time"
)

// WeekDay identifies one of the seven calendar weekdays. Identity is
// name-based and case-insensitive, matching how schedules are authored.
type WeekDay string

const (
	Monday    WeekDay = "monday"
	Tuesday   WeekDay = "tuesday"
	Wednesday WeekDay = "wednesday"
	Thursday  WeekDay = "thursday"
	Friday    WeekDay = "friday"
	Saturday  WeekDay = "saturday"
	Sunday    WeekDay = "sunday"
)

// ParseWeekDay normalizes a day name to its canonical WeekDay.
func ParseWeekDay(s string) (WeekDay, error) {
	switch WeekDay(strings.ToLower(strings.TrimSpace(s))) {
	case Monday:
		return Monday, nil
	case Tuesday:
		return Tuesday, nil
	case Wednesday:
		return Wednesday, nil
	case Thursday:
		return Thursday, nil
	case Friday:
		return Friday, nil
	case Saturday:
		return Saturday, nil
	case Sunday:
		return Sunday, nil
	}
	return "", fmt.Errorf("schedule: unknown weekday %q", s)
}

// WeekDayFromTime maps Go's time.Weekday onto a WeekDay.
func WeekDayFromTime(d time.Weekday) WeekDay {
	switch d {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// WorkingHoursEntry is one weekday's recurring availability window.
// An enabled entry whose Start is not before End produces zero slots;
// that is a configuration quirk, not an error.
type WorkingHoursEntry struct {
	Day       WeekDay   `json:"day"`
	Available bool      `json:"available"`
	Start     TimeOfDay `json:"start"`
	End       TimeOfDay `json:"end"`
}

// Schedule maps each weekday to at most one working-hours entry. It is
// owned by the provider directory; this package only reads it.
type Schedule map[WeekDay]WorkingHoursEntry

// NewSchedule builds a schedule from a list of entries. A later entry for
// the same day replaces the earlier one, keeping the per-day uniqueness
// invariant.
func NewSchedule(entries []WorkingHoursEntry) Schedule {
	s := make(Schedule, len(entries))
	for _, e := range entries {
		s[e.Day] = e
	}
	return s
}

// EntryFor returns the entry for a weekday, if one exists.
func (s Schedule) EntryFor(day WeekDay) (WorkingHoursEntry, bool) {
	e, ok := s[day]
	return e, ok
}

// HasAvailableDay reports whether the weekday has an enabled entry.
func (s Schedule) HasAvailableDay(day WeekDay) bool {
	e, ok := s[day]
	return ok && e.Available
}
