package availability

import "github.com/carebook/carebook-platform/internal/schedule"

// DefaultHorizonDays bounds the forward scan of FindNextAvailable.
const DefaultHorizonDays = 30

// FindNextAvailable scans forward day by day, starting the day after
// from, and returns the first date whose weekday has an enabled
// working-hours entry. It returns nil when nothing is open within the
// horizon; callers treat nil as "no availability found", not a fault.
//
// The search is schedule-level only: it does not consult booked capacity,
// so the returned date may still have zero free slots.
func FindNextAvailable(from schedule.Date, sched schedule.Schedule, horizonDays int) *schedule.Date {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	for i := 1; i <= horizonDays; i++ {
		d := from.AddDays(i)
		if sched.HasAvailableDay(d.Weekday()) {
			return &d
		}
	}
	return nil
}
