package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// DayRoster fetches the roster for a date
	DayRoster(ctx context.Context, date string) (DayRoster, error)

	// MarkRow upserts one employee's status from the day table
	MarkRow(ctx context.Context, table *DayTable, employeeID string, status Status) (Record, error)

	// BulkMark upserts the table's selection; returns the updated count
	BulkMark(ctx context.Context, table *DayTable, status Status) (int, error)

	// History fetches filtered records and the full-history summary together
	History(ctx context.Context, employeeID string, filter HistoryFilter) (History, error)

	// MarkAttendance validates and submits the mark-attendance form
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (Record, error)
}
