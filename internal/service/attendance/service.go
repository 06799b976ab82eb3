package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/clock"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/mutation"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/refresh"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	notifier       refresh.Publisher
	clock          *clock.Clock
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, notifier refresh.Publisher, clk *clock.Clock) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		notifier:       notifier,
		clock:          clk,
	}
}

func validateDate(date string) error {
	if _, ok := validator.IsValidDate(date); !ok {
		return validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	return nil
}

// DayRoster implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DayRoster(ctx context.Context, date string) (attendance.DayRoster, error) {
	if err := validateDate(date); err != nil {
		return attendance.DayRoster{}, err
	}

	roster, err := s.attendanceRepo.ByDate(ctx, date)
	if err != nil {
		slog.WarnContext(ctx, "Failed to load day roster", "date", date, "error", err)
		return attendance.DayRoster{}, fmt.Errorf("failed to load attendance for %s: %w", date, err)
	}
	return roster, nil
}

// MarkRow implements attendance.AttendanceService. The roster is not
// touched; the attendance-by-date refresh is announced when the row's saved
// flash ends.
func (s *AttendanceServiceImpl) MarkRow(ctx context.Context, table *attendance.DayTable, employeeID string, status attendance.Status) (attendance.Record, error) {
	if !status.IsValid() {
		return attendance.Record{}, attendance.ErrInvalidStatus
	}

	row := table.Row(employeeID)
	if err := row.Begin(); err != nil {
		if errors.Is(err, mutation.ErrInFlight) {
			return attendance.Record{}, attendance.ErrRowBusy
		}
		return attendance.Record{}, err
	}

	req := attendance.MarkAttendanceRequest{EmployeeID: employeeID, Date: table.Date(), Status: status}
	if err := req.Validate(s.clock.Today()); err != nil {
		_ = row.Fail(err)
		return attendance.Record{}, err
	}

	record, err := s.attendanceRepo.Upsert(ctx, req)
	if err != nil {
		_ = row.Fail(err)
		slog.WarnContext(ctx, "Failed to mark attendance", "employee_id", employeeID, "date", req.Date, "error", err)
		return attendance.Record{}, fmt.Errorf("failed to mark attendance: %w", err)
	}

	_ = row.Succeed()
	s.notifier.Invalidate(
		refresh.Invalidation{Topic: refresh.TopicAttendanceByEmployee, Key: employeeID},
		refresh.Invalidation{Topic: refresh.TopicDashboard},
	)
	return record, nil
}

// BulkMark implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) BulkMark(ctx context.Context, table *attendance.DayTable, status attendance.Status) (int, error) {
	ids := table.Selection()
	if len(ids) == 0 {
		return 0, nil
	}
	if !status.IsValid() {
		return 0, attendance.ErrInvalidStatus
	}

	bulk := table.Bulk()
	if err := bulk.Begin(); err != nil {
		if errors.Is(err, mutation.ErrInFlight) {
			return 0, attendance.ErrBulkInFlight
		}
		return 0, err
	}

	date := table.Date()
	if date > s.clock.Today() {
		_ = bulk.Fail(attendance.ErrFutureDate)
		return 0, validator.ValidationErrors{{Field: "date", Message: "Date cannot be in the future"}}
	}

	req := attendance.BulkAttendanceRequest{Records: make([]attendance.MarkAttendanceRequest, 0, len(ids))}
	for _, id := range ids {
		req.Records = append(req.Records, attendance.MarkAttendanceRequest{EmployeeID: id, Date: date, Status: status})
	}

	resp, err := s.attendanceRepo.BulkUpsert(ctx, req)
	if err != nil {
		_ = bulk.Fail(err)
		slog.WarnContext(ctx, "Bulk attendance failed", "date", date, "count", len(ids), "error", err)
		return 0, fmt.Errorf("failed to update attendance: %w", err)
	}

	_ = bulk.Succeed()
	table.ClearSelection()

	if failed := resp.FailedCount(); failed > 0 {
		slog.WarnContext(ctx, "Bulk attendance partially failed", "date", date, "success", resp.Success, "failed", failed)
	}
	s.notifier.Invalidate(refresh.AttendanceChanged(date, ids...)...)
	return resp.Success, nil
}

// History implements attendance.AttendanceService. Records and summary are
// fetched together; either failing fails the whole view.
func (s *AttendanceServiceImpl) History(ctx context.Context, employeeID string, filter attendance.HistoryFilter) (attendance.History, error) {
	if employeeID == "" {
		return attendance.History{}, attendance.ErrNoEmployee
	}

	var (
		list    attendance.ListAttendanceResponse
		summary attendance.Summary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = s.attendanceRepo.ListByEmployee(gctx, employeeID, filter)
		return err
	})
	g.Go(func() error {
		var err error
		summary, err = s.attendanceRepo.SummaryByEmployee(gctx, employeeID)
		return err
	})

	if err := g.Wait(); err != nil {
		slog.WarnContext(ctx, "Failed to load attendance history", "employee_id", employeeID, "error", err)
		return attendance.History{}, fmt.Errorf("failed to load attendance history: %w", err)
	}

	return attendance.History{
		EmployeeID: employeeID,
		Filter:     filter,
		Records:    list.Records,
		Summary:    summary,
	}, nil
}

// MarkAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.Record, error) {
	if err := req.Validate(s.clock.Today()); err != nil {
		return attendance.Record{}, err
	}

	record, err := s.attendanceRepo.Upsert(ctx, req)
	if err != nil {
		slog.WarnContext(ctx, "Failed to mark attendance", "employee_id", req.EmployeeID, "date", req.Date, "error", err)
		return attendance.Record{}, fmt.Errorf("failed to mark attendance: %w", err)
	}

	s.notifier.Invalidate(refresh.AttendanceChanged(req.Date, req.EmployeeID)...)
	return record, nil
}
