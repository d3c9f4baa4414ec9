package availability

import (
	"testing"

	"github.com/carebook/carebook-platform/internal/schedule"
)

func mondayOnlySchedule() schedule.Schedule {
	return schedule.NewSchedule([]schedule.WorkingHoursEntry{
		workdayEntry(schedule.Monday, true, "9:00 am", "5:00 pm"),
	})
}

func TestFindNextAvailable(t *testing.T) {
	sched := mondayOnlySchedule()

	// From Monday 2025-12-08 the next open day is the following Monday,
	// not the same day.
	from := schedule.MustParseDate("2025-12-08")
	got := FindNextAvailable(from, sched, DefaultHorizonDays)
	if got == nil {
		t.Fatal("expected a next available date")
	}
	if want := "2025-12-15"; got.String() != want {
		t.Errorf("next available = %s, want %s", got, want)
	}

	// From a Friday the scan lands on the Monday three days out.
	from = schedule.MustParseDate("2025-12-12")
	got = FindNextAvailable(from, sched, DefaultHorizonDays)
	if got == nil || got.String() != "2025-12-15" {
		t.Errorf("next available = %v, want 2025-12-15", got)
	}
}

func TestFindNextAvailableNoOpenDays(t *testing.T) {
	sched := schedule.NewSchedule([]schedule.WorkingHoursEntry{
		workdayEntry(schedule.Monday, false, "9:00 am", "5:00 pm"),
	})

	if got := FindNextAvailable(schedule.MustParseDate("2025-12-08"), sched, DefaultHorizonDays); got != nil {
		t.Errorf("expected nil for a fully closed schedule, got %s", got)
	}
}

func TestFindNextAvailableHonorsHorizon(t *testing.T) {
	sched := mondayOnlySchedule()

	// Tuesday start with a 5-day horizon never reaches the next Monday.
	from := schedule.MustParseDate("2025-12-09")
	if got := FindNextAvailable(from, sched, 5); got != nil {
		t.Errorf("expected nil inside a short horizon, got %s", got)
	}
	if got := FindNextAvailable(from, sched, 6); got == nil || got.String() != "2025-12-15" {
		t.Errorf("horizon of 6 should reach 2025-12-15, got %v", got)
	}
}

func TestFindNextAvailableCrossesMonthBoundary(t *testing.T) {
	sched := mondayOnlySchedule()

	// 2025-12-30 is a Tuesday; the next Monday is 2026-01-05.
	from := schedule.MustParseDate("2025-12-30")
	got := FindNextAvailable(from, sched, DefaultHorizonDays)
	if got == nil || got.String() != "2026-01-05" {
		t.Errorf("next available = %v, want 2026-01-05", got)
	}
}
