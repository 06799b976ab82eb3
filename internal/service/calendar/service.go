package calendar

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/calendar"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/clock"
)

type CalendarServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	clock          *clock.Clock
}

func NewCalendarService(attendanceRepo attendance.AttendanceRepository, clk *clock.Clock) calendar.CalendarService {
	return &CalendarServiceImpl{
		attendanceRepo: attendanceRepo,
		clock:          clk,
	}
}

// MonthCounts implements calendar.CalendarService. Dots are decoration, so
// a failed fetch just leaves the month blank.
func (s *CalendarServiceImpl) MonthCounts(ctx context.Context, m calendar.Month) map[string]attendance.DayCount {
	summary, err := s.attendanceRepo.MonthSummary(ctx, m.Year, int(m.Month))
	if err != nil {
		slog.DebugContext(ctx, "Calendar month summary unavailable", "month", m.Key(), "error", err)
		return map[string]attendance.DayCount{}
	}
	return calendar.CountsByDate(summary.Days)
}

// Grid implements calendar.CalendarService.
func (s *CalendarServiceImpl) Grid(ctx context.Context, picker *calendar.Picker) calendar.Grid {
	view := picker.View()
	return calendar.BuildGrid(view, s.clock.Today(), picker.Selected(), s.MonthCounts(ctx, view))
}

// Today implements calendar.CalendarService.
func (s *CalendarServiceImpl) Today() string {
	return s.clock.Today()
}
