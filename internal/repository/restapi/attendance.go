package restapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/attendance"
)

type attendanceRepositoryImpl struct {
	client *Client
}

func NewAttendanceRepository(client *Client) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{client: client}
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter attendance.HistoryFilter) (attendance.ListAttendanceResponse, error) {
	query := url.Values{}
	if filter.DateFrom != "" {
		query.Set("date_from", filter.DateFrom)
	}
	if filter.DateTo != "" {
		query.Set("date_to", filter.DateTo)
	}

	var resp attendance.ListAttendanceResponse
	if err := r.client.do(ctx, http.MethodGet, "/api/attendance/"+url.PathEscape(employeeID), query, nil, &resp); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if resp.Records == nil {
		resp.Records = []attendance.Record{}
	}
	return resp, nil
}

// SummaryByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) SummaryByEmployee(ctx context.Context, employeeID string) (attendance.Summary, error) {
	var summary attendance.Summary
	if err := r.client.do(ctx, http.MethodGet, "/api/attendance/"+url.PathEscape(employeeID)+"/summary", nil, nil, &summary); err != nil {
		return attendance.Summary{}, err
	}
	return summary, nil
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.Record, error) {
	var record attendance.Record
	if err := r.client.do(ctx, http.MethodPost, "/api/attendance", nil, req, &record); err != nil {
		return attendance.Record{}, err
	}
	return record, nil
}

// BulkUpsert implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) BulkUpsert(ctx context.Context, req attendance.BulkAttendanceRequest) (attendance.BulkAttendanceResponse, error) {
	var resp attendance.BulkAttendanceResponse
	if err := r.client.do(ctx, http.MethodPost, "/api/attendance/bulk", nil, req, &resp); err != nil {
		return attendance.BulkAttendanceResponse{}, err
	}
	return resp, nil
}

// ByDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ByDate(ctx context.Context, date string) (attendance.DayRoster, error) {
	var roster attendance.DayRoster
	if err := r.client.do(ctx, http.MethodGet, "/api/attendance/date/"+url.PathEscape(date), nil, nil, &roster); err != nil {
		return attendance.DayRoster{}, err
	}
	if roster.Records == nil {
		roster.Records = []attendance.RosterRow{}
	}
	return roster, nil
}

// MonthSummary implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) MonthSummary(ctx context.Context, year, month int) (attendance.MonthSummary, error) {
	path := "/api/attendance/calendar/" + strconv.Itoa(year) + "/" + strconv.Itoa(month)

	var summary attendance.MonthSummary
	if err := r.client.do(ctx, http.MethodGet, path, nil, nil, &summary); err != nil {
		return attendance.MonthSummary{}, err
	}
	return summary, nil
}
