// Package availability turns a provider's weekly working hours into
// concrete bookable slots: slot generation, past-slot filtering, bounded
// next-available search, and the today/tomorrow/next-available buckets
// served to the booking UI.
package availability

import (
	"time"

	"github.com/carebook/carebook-platform/internal/schedule"
)

// Slot is a single bookable start time of fixed duration on a given date.
// Slots are values; identity is (date, start), nothing more.
type Slot struct {
	Start           schedule.TimeOfDay `json:"start"`
	DurationMinutes int                `json:"duration_minutes"`
}

// Label returns the canonical display label for the slot start time.
func (s Slot) Label() string { return s.Start.Format() }

// GenerateSlots expands one working-hours entry into an ascending list of
// slots stepped every stepMinutes. A slot is offered only while at least
// half the step remains before closing time, so the observed policy of
// 60-minute stepping keeps a 30-minute trailing buffer.
//
// A disabled entry, or an enabled entry whose window is empty or inverted
// (start >= end), yields no slots rather than an error.
func GenerateSlots(entry schedule.WorkingHoursEntry, durationMinutes, stepMinutes int) []Slot {
	if !entry.Available || entry.Start >= entry.End {
		return nil
	}
	if stepMinutes <= 0 || durationMinutes <= 0 {
		return nil
	}

	buffer := schedule.TimeOfDay(stepMinutes / 2)
	step := schedule.TimeOfDay(stepMinutes)

	var slots []Slot
	for m := entry.Start; m+buffer <= entry.End; m += step {
		slots = append(slots, Slot{Start: m, DurationMinutes: durationMinutes})
	}
	return slots
}

// ExcludePastForToday removes slots whose start time has already passed,
// but only when date is the current local date; any other date is returned
// untouched. The filter is pure and idempotent.
func ExcludePastForToday(slots []Slot, date schedule.Date, now time.Time) []Slot {
	if schedule.DateFromTime(now) != date {
		return slots
	}

	nowMinutes := schedule.TimeOfDay(now.Hour()*60 + now.Minute())
	filtered := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if s.Start > nowMinutes {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// Labels projects slots onto their display labels, preserving order.
func Labels(slots []Slot) []string {
	labels := make([]string, len(slots))
	for i, s := range slots {
		labels[i] = s.Label()
	}
	return labels
}
