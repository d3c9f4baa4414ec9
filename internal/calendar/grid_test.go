package calendar

import (
	"testing"

	"github.com/carebook/carebook-platform/internal/schedule"
)

func weekdaySchedule() schedule.Schedule {
	entries := []schedule.WorkingHoursEntry{}
	for _, day := range []schedule.WeekDay{schedule.Monday, schedule.Tuesday, schedule.Wednesday, schedule.Thursday, schedule.Friday} {
		entries = append(entries, schedule.WorkingHoursEntry{
			Day:       day,
			Available: true,
			Start:     schedule.MustParseTimeOfDay("9:00 am"),
			End:       schedule.MustParseTimeOfDay("5:00 pm"),
		})
	}
	return schedule.NewSchedule(entries)
}

func TestParseViewMode(t *testing.T) {
	tests := []struct {
		raw     string
		want    ViewMode
		wantErr bool
	}{
		{"", ViewMonth, false},
		{"day", ViewDay, false},
		{"week", ViewWeek, false},
		{"month", ViewMonth, false},
		{"MONTH", ViewMonth, false},
		{"year", "", true},
	}
	for _, tt := range tests {
		got, err := ParseViewMode(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseViewMode(%q) expected error", tt.raw)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseViewMode(%q) = %v, %v; want %v", tt.raw, got, err, tt.want)
		}
	}
}

func TestBuildGridMonthShape(t *testing.T) {
	sched := weekdaySchedule()
	today := schedule.MustParseDate("2026-02-10")

	cells := BuildGrid(schedule.MustParseDate("2026-02-10"), ViewMonth, sched, today, nil)

	if len(cells) != MonthGridCells {
		t.Fatalf("month grid has %d cells, want %d", len(cells), MonthGridCells)
	}

	// February 2026 starts on a Sunday, so the grid leads with Monday
	// Jan 26 and the first of the month sits at index 6.
	if got := cells[0].Date.String(); got != "2026-01-26" {
		t.Errorf("first cell = %s, want 2026-01-26", got)
	}
	if cells[0].Date.Weekday() != schedule.Monday {
		t.Errorf("grid must start on Monday, got %s", cells[0].Date.Weekday())
	}
	if got := cells[6].Date.String(); got != "2026-02-01" {
		t.Errorf("cell 6 = %s, want 2026-02-01", got)
	}

	// Consecutive dates throughout.
	for i := 1; i < len(cells); i++ {
		if want := cells[i-1].Date.AddDays(1); cells[i].Date != want {
			t.Fatalf("cell %d = %s, want %s", i, cells[i].Date, want)
		}
	}

	// Leading January days are outside the focused month.
	if cells[0].InFocusedPeriod {
		t.Error("2026-01-26 should be outside the focused month")
	}
	if !cells[6].InFocusedPeriod {
		t.Error("2026-02-01 should be inside the focused month")
	}
}

func TestBuildGridCellFlags(t *testing.T) {
	sched := weekdaySchedule()
	today := schedule.MustParseDate("2026-02-10")
	selected := schedule.MustParseDate("2026-02-12")

	cells := BuildGrid(schedule.MustParseDate("2026-02-10"), ViewMonth, sched, today, &selected)

	byDate := map[string]Cell{}
	for _, c := range cells {
		byDate[c.Date.String()] = c
	}

	if c := byDate["2026-02-10"]; !c.IsToday || c.IsPast || !c.IsSelectable {
		t.Errorf("today cell flags wrong: %+v", c)
	}
	if c := byDate["2026-02-09"]; !c.IsPast || c.IsSelectable {
		t.Errorf("yesterday must be past and unselectable: %+v", c)
	}
	if c := byDate["2026-02-12"]; !c.IsSelected {
		t.Errorf("selected date not flagged: %+v", c)
	}
	// 2026-02-14 is a Saturday with no working hours.
	if c := byDate["2026-02-14"]; c.IsSelectable {
		t.Errorf("closed weekday must be unselectable: %+v", c)
	}
	// Open weekday in the future.
	if c := byDate["2026-02-11"]; !c.IsSelectable || c.IsToday {
		t.Errorf("future open day flags wrong: %+v", c)
	}
}

func TestBuildGridWeek(t *testing.T) {
	sched := weekdaySchedule()
	today := schedule.MustParseDate("2026-02-10")

	// Reference Thursday; the week runs Monday Feb 9 through Sunday Feb 15.
	cells := BuildGrid(schedule.MustParseDate("2026-02-12"), ViewWeek, sched, today, nil)
	if len(cells) != 7 {
		t.Fatalf("week grid has %d cells, want 7", len(cells))
	}
	if got := cells[0].Date.String(); got != "2026-02-09" {
		t.Errorf("week starts at %s, want 2026-02-09", got)
	}
	if got := cells[6].Date.String(); got != "2026-02-15" {
		t.Errorf("week ends at %s, want 2026-02-15", got)
	}
	for _, c := range cells {
		if !c.InFocusedPeriod {
			t.Errorf("every week cell is in the focused period: %+v", c)
		}
	}
}

func TestBuildGridDay(t *testing.T) {
	sched := weekdaySchedule()
	today := schedule.MustParseDate("2026-02-10")

	cells := BuildGrid(schedule.MustParseDate("2026-02-12"), ViewDay, sched, today, nil)
	if len(cells) != 1 {
		t.Fatalf("day grid has %d cells, want 1", len(cells))
	}
	if got := cells[0].Date.String(); got != "2026-02-12" {
		t.Errorf("day cell = %s, want 2026-02-12", got)
	}
}

func TestBuildGridDecemberIntoJanuary(t *testing.T) {
	sched := weekdaySchedule()
	today := schedule.MustParseDate("2025-12-01")

	cells := BuildGrid(schedule.MustParseDate("2025-12-15"), ViewMonth, sched, today, nil)

	// December 2025 starts on a Monday, so the grid begins exactly at
	// the first and spills into early January.
	if got := cells[0].Date.String(); got != "2025-12-01" {
		t.Errorf("first cell = %s, want 2025-12-01", got)
	}
	if got := cells[len(cells)-1].Date.String(); got != "2026-01-04" {
		t.Errorf("last cell = %s, want 2026-01-04", got)
	}
	if cells[len(cells)-1].InFocusedPeriod {
		t.Error("January spillover must be outside the focused month")
	}
}

func TestNavigate(t *testing.T) {
	today := schedule.MustParseDate("2026-02-10")

	tests := []struct {
		name string
		ref  string
		mode ViewMode
		dir  Direction
		want string
	}{
		{"day next", "2026-02-10", ViewDay, DirNext, "2026-02-11"},
		{"day prev over month edge", "2026-03-01", ViewDay, DirPrev, "2026-02-28"},
		{"week next", "2026-02-10", ViewWeek, DirNext, "2026-02-17"},
		{"week prev", "2026-02-10", ViewWeek, DirPrev, "2026-02-03"},
		{"month next", "2026-02-10", ViewMonth, DirNext, "2026-03-10"},
		{"month prev clamps day", "2026-03-31", ViewMonth, DirPrev, "2026-02-28"},
		{"month next year rollover", "2025-12-15", ViewMonth, DirNext, "2026-01-15"},
		{"today resets", "2026-06-01", ViewMonth, DirToday, "2026-02-10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Navigate(schedule.MustParseDate(tt.ref), tt.mode, tt.dir, today)
			if got.String() != tt.want {
				t.Errorf("Navigate(%s, %s, %s) = %s, want %s", tt.ref, tt.mode, tt.dir, got, tt.want)
			}
		})
	}
}
