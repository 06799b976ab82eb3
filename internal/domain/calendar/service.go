package calendar

import (
	"context"

	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/attendance"
)

// CalendarService defines the calendar picker operations
type CalendarService interface {
	// MonthCounts fetches per-day counts for m; failures yield an empty map
	MonthCounts(ctx context.Context, m Month) map[string]attendance.DayCount

	// Grid builds the picker's current view with today's date and dots
	Grid(ctx context.Context, picker *Picker) Grid

	// Today is the current date in the app timezone
	Today() string
}
