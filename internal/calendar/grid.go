// Package calendar builds the day/week/month navigation grids shown by
// the booking UI. Grid construction is pure: the schedule is consulted
// only to decide whether a day cell is selectable.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/carebook/carebook-platform/internal/schedule"
)

// ViewMode selects the size of the calendar grid.
type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// ParseViewMode validates a view-mode string. Matching is
// case-insensitive; the empty string defaults to the month view.
func ParseViewMode(s string) (ViewMode, error) {
	switch mode := ViewMode(strings.ToLower(s)); mode {
	case ViewDay, ViewWeek, ViewMonth:
		return mode, nil
	case "":
		return ViewMonth, nil
	}
	return "", fmt.Errorf("calendar: unknown view mode %q", s)
}

// MonthGridCells is the fixed size of a month grid: five full weeks,
// regardless of how many weeks the month actually spans. Cells outside
// the focused month stay rendered so the grid remains rectangular.
const MonthGridCells = 35

// Cell is one rendered day position in a grid.
type Cell struct {
	Date            schedule.Date `json:"date"`
	InFocusedPeriod bool          `json:"in_focused_period"`
	IsToday         bool          `json:"is_today"`
	IsPast          bool          `json:"is_past"`
	IsSelectable    bool          `json:"is_selectable"`
	IsSelected      bool          `json:"is_selected"`
}

// BuildGrid produces the ordered cell sequence for a reference date and
// view mode. Month mode always yields 35 cells starting from the Monday
// on or before the first of the reference month; week mode yields the
// Monday-to-Sunday week containing the reference date; day mode yields a
// single cell.
//
// A cell is selectable when its date is not in the past (today counts)
// and its weekday has an enabled working-hours entry.
func BuildGrid(ref schedule.Date, mode ViewMode, sched schedule.Schedule, today schedule.Date, selected *schedule.Date) []Cell {
	switch mode {
	case ViewDay:
		return []Cell{makeCell(ref, true, sched, today, selected)}
	case ViewWeek:
		start := mondayOnOrBefore(ref)
		cells := make([]Cell, 0, 7)
		for i := 0; i < 7; i++ {
			cells = append(cells, makeCell(start.AddDays(i), true, sched, today, selected))
		}
		return cells
	default:
		firstOfMonth := schedule.Date{Year: ref.Year, Month: ref.Month, Day: 1}
		start := mondayOnOrBefore(firstOfMonth)
		cells := make([]Cell, 0, MonthGridCells)
		for i := 0; i < MonthGridCells; i++ {
			d := start.AddDays(i)
			inMonth := d.Year == ref.Year && d.Month == ref.Month
			cells = append(cells, makeCell(d, inMonth, sched, today, selected))
		}
		return cells
	}
}

func makeCell(d schedule.Date, inFocus bool, sched schedule.Schedule, today schedule.Date, selected *schedule.Date) Cell {
	isPast := d.Before(today)
	return Cell{
		Date:            d,
		InFocusedPeriod: inFocus,
		IsToday:         d == today,
		IsPast:          isPast,
		IsSelectable:    !isPast && sched.HasAvailableDay(d.Weekday()),
		IsSelected:      selected != nil && *selected == d,
	}
}

// mondayOnOrBefore walks back to the Monday starting the week of d.
func mondayOnOrBefore(d schedule.Date) schedule.Date {
	wd := d.Time().Weekday()
	// Monday-based offset: Monday=0 ... Sunday=6.
	offset := (int(wd) + 6) % 7
	return d.AddDays(-offset)
}

// Direction is a navigation step relative to the current reference date.
type Direction string

const (
	DirPrev  Direction = "prev"
	DirNext  Direction = "next"
	DirToday Direction = "today"
)

// Navigate shifts the reference date by one whole unit of the active view
// mode. Month hops clamp the day of month so Jan 31 -> Feb 28 instead of
// normalizing into March, and year boundaries roll over correctly in both
// directions.
func Navigate(ref schedule.Date, mode ViewMode, dir Direction, today schedule.Date) schedule.Date {
	if dir == DirToday {
		return today
	}
	delta := 1
	if dir == DirPrev {
		delta = -1
	}

	switch mode {
	case ViewDay:
		return ref.AddDays(delta)
	case ViewWeek:
		return ref.AddDays(7 * delta)
	default:
		return addMonthsClamped(ref, delta)
	}
}

func addMonthsClamped(d schedule.Date, months int) schedule.Date {
	year := d.Year
	month := int(d.Month) + months
	for month < 1 {
		month += 12
		year--
	}
	for month > 12 {
		month -= 12
		year++
	}
	day := d.Day
	if max := daysInMonth(year, time.Month(month)); day > max {
		day = max
	}
	return schedule.Date{Year: year, Month: time.Month(month), Day: day}
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}
