package attendance

import (
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/clock"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

var Statuses = []string{string(StatusPresent), string(StatusAbsent)}

func (s Status) IsValid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Record is one marked day. The backend keeps at most one record per
// (EmployeeID, Date); marking again updates it.
type Record struct {
	ID         int             `json:"id"`
	EmployeeID string          `json:"employee_id"`
	Date       string          `json:"date"` // YYYY-MM-DD
	Status     Status          `json:"status"`
	CreatedAt  clock.Timestamp `json:"created_at"`
}

// RosterRow is an employee's status on one date. Status is nil when the
// employee is unmarked.
type RosterRow struct {
	EmployeeID string  `json:"employee_id"`
	FullName   string  `json:"full_name"`
	Department string  `json:"department"`
	Status     *Status `json:"status"`
}

func (r RosterRow) IsUnmarked() bool {
	return r.Status == nil
}

func (r RosterRow) Is(s Status) bool {
	return r.Status != nil && *r.Status == s
}

// DayRoster lists every employee for a date with the server-computed counts.
type DayRoster struct {
	Date     string      `json:"date"`
	Records  []RosterRow `json:"records"`
	Present  int         `json:"present"`
	Absent   int         `json:"absent"`
	Unmarked int         `json:"unmarked"`
}

func (d DayRoster) EmployeeIDs() []string {
	ids := make([]string, 0, len(d.Records))
	for _, r := range d.Records {
		ids = append(ids, r.EmployeeID)
	}
	return ids
}

// Summary aggregates an employee's full history, independent of any filter.
type Summary struct {
	EmployeeID  string `json:"employee_id"`
	FullName    string `json:"full_name"`
	TotalDays   int    `json:"total_days"`
	PresentDays int    `json:"present_days"`
	AbsentDays  int    `json:"absent_days"`
}

func (s Summary) PresentPercent() int {
	return percent(s.PresentDays, s.TotalDays)
}

func (s Summary) AbsentPercent() int {
	return percent(s.AbsentDays, s.TotalDays)
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	// round half up
	return (part*200 + total) / (total * 2)
}

// DayCount is one day of a month summary used by the calendar.
type DayCount struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
}

type MonthSummary struct {
	Year  int        `json:"year"`
	Month int        `json:"month"`
	Days  []DayCount `json:"days"`
}

// History is the employee history view: filtered records plus the
// unfiltered summary.
type History struct {
	EmployeeID string
	Filter     HistoryFilter
	Records    []Record
	Summary    Summary
}
