package view

import (
	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/calendar"
	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/mutation"
)

type DashboardPage struct {
	Counts dashboard.Counts
	Error  string
}

type EmployeesPage struct {
	Employees   []employee.Employee
	Total       int
	Departments []employee.Department
	Error       string
}

// RowView is one row of the date attendance table.
type RowView struct {
	EmployeeID string
	FullName   string
	Department string
	Status     string
	Selected   bool
	Saving     bool
	Saved      bool
	Error      string
}

type AttendancePage struct {
	Grid          calendar.Grid
	Weekdays      []string
	Today         string
	SelectedDate  string
	Roster        *attendance.DayRoster
	Rows          []RowView
	AllSelected   bool
	SelectedCount int
	BulkBusy      bool
	RosterError   string
	Employees     []employee.Employee
	Statuses      []string
}

type HistoryPage struct {
	Employees  []employee.Employee
	EmployeeID string
	Filter     attendance.HistoryFilter
	History    *attendance.History
	Error      string
}

// BuildRows joins the roster with the table's selection and row states.
func BuildRows(roster attendance.DayRoster, table *attendance.DayTable) []RowView {
	rows := make([]RowView, 0, len(roster.Records))
	for _, r := range roster.Records {
		row := RowView{
			EmployeeID: r.EmployeeID,
			FullName:   r.FullName,
			Department: r.Department,
			Selected:   table.IsSelected(r.EmployeeID),
		}
		if r.Status != nil {
			row.Status = string(*r.Status)
		}
		switch table.RowState(r.EmployeeID) {
		case mutation.InFlight:
			row.Saving = true
		case mutation.Succeeded:
			row.Saved = true
		case mutation.Failed:
			if err := table.RowError(r.EmployeeID); err != nil {
				row.Error = err.Error()
			}
		}
		rows = append(rows, row)
	}
	return rows
}
