package calendar

import (
	"fmt"
	"time"
)

// Month is a calendar month view.
type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Add moves the month by delta, rolling the year over in either direction.
func (m Month) Add(delta int) Month {
	return MonthOf(m.First().AddDate(0, delta, 0))
}

func (m Month) Next() Month {
	return m.Add(1)
}

func (m Month) Prev() Month {
	return m.Add(-1)
}

// First is midnight UTC on day 1.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (m Month) Days() int {
	return m.First().AddDate(0, 1, -1).Day()
}

// Date formats day d of the month as YYYY-MM-DD.
func (m Month) Date(day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", m.Year, int(m.Month), day)
}

// Key formats the month as YYYY-MM.
func (m Month) Key() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Label is the heading shown above the grid, e.g. "March 2024".
func (m Month) Label() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}
