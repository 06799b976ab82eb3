package calendar

import (
	"time"

	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/attendance"
)

// Weekdays are the grid column headings, Sunday first.
var Weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Dot is the marker colour under a day with attendance.
type Dot string

const (
	DotNone  Dot = ""
	DotGreen Dot = "green"
	DotAmber Dot = "amber"
	DotRed   Dot = "red"
)

// DotFor picks the marker for a day that has an entry in the month summary.
func DotFor(present, absent int) Dot {
	switch {
	case absent > 0 && present > 0:
		return DotAmber
	case absent > 0:
		return DotRed
	default:
		return DotGreen
	}
}

type DayCell struct {
	Day        int
	Date       string
	IsToday    bool
	IsSelected bool
	IsFuture   bool
	Dot        Dot
}

// Grid is one month laid out Sunday-first: LeadingBlanks empty cells, then
// one cell per day.
type Grid struct {
	Month         Month
	LeadingBlanks int
	Cells         []DayCell
}

// Blanks is a helper for templates ranging over the leading empty cells.
func (g Grid) Blanks() []struct{} {
	return make([]struct{}, g.LeadingBlanks)
}

// BuildGrid lays out m. today and selected are YYYY-MM-DD; selected may be
// empty. Days missing from counts get no dot.
func BuildGrid(m Month, today, selected string, counts map[string]attendance.DayCount) Grid {
	g := Grid{
		Month:         m,
		LeadingBlanks: int(m.First().Weekday() - time.Sunday),
		Cells:         make([]DayCell, 0, m.Days()),
	}

	for d := 1; d <= m.Days(); d++ {
		date := m.Date(d)
		cell := DayCell{
			Day:        d,
			Date:       date,
			IsToday:    date == today,
			IsSelected: selected != "" && date == selected,
			IsFuture:   date > today,
		}
		if c, ok := counts[date]; ok {
			cell.Dot = DotFor(c.Present, c.Absent)
		}
		g.Cells = append(g.Cells, cell)
	}

	return g
}

// CountsByDate indexes a month summary by date.
func CountsByDate(days []attendance.DayCount) map[string]attendance.DayCount {
	out := make(map[string]attendance.DayCount, len(days))
	for _, d := range days {
		out[d.Date] = d
	}
	return out
}
