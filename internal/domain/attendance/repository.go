package attendance

import (
	"context"
)

// AttendanceRepository is backed by the HRMS REST API.
type AttendanceRepository interface {
	// ListByEmployee returns records for one employee, newest first, within
	// the optional filter range
	ListByEmployee(ctx context.Context, employeeID string, filter HistoryFilter) (ListAttendanceResponse, error)

	// SummaryByEmployee returns counts over the employee's full history
	SummaryByEmployee(ctx context.Context, employeeID string) (Summary, error)

	// Upsert inserts or updates the record keyed by (employee_id, date)
	Upsert(ctx context.Context, req MarkAttendanceRequest) (Record, error)

	// BulkUpsert upserts many records in one request
	BulkUpsert(ctx context.Context, req BulkAttendanceRequest) (BulkAttendanceResponse, error)

	// ByDate returns the roster of every employee for a date
	ByDate(ctx context.Context, date string) (DayRoster, error)

	// MonthSummary returns per-day present/absent counts for a month
	MonthSummary(ctx context.Context, year, month int) (MonthSummary, error)
}
