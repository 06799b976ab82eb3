package attendance

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/clock"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/mutation"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/refresh"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/validator"
	"github.com/cmlabs-hris/hrms-lite-web/internal/repository/restapi"
	"github.com/cmlabs-hris/hrms-lite-web/internal/repository/restapi/restapitest"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDate = "2024-03-01"

type recordingPublisher struct {
	mu   sync.Mutex
	invs []refresh.Invalidation
}

func (p *recordingPublisher) Invalidate(invs ...refresh.Invalidation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.invs = append(p.invs, invs...)
}

func (p *recordingPublisher) All() []refresh.Invalidation {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]refresh.Invalidation(nil), p.invs...)
}

func setup(t *testing.T) (*restapitest.Backend, attendance.AttendanceService, *recordingPublisher) {
	t.Helper()
	backend := restapitest.NewBackend(testDate)
	t.Cleanup(backend.Close)
	backend.SeedEmployees(
		employee.Employee{EmployeeID: "E1", FullName: "Ada Lovelace", Email: "ada@example.com", Department: "Engineering"},
		employee.Employee{EmployeeID: "E2", FullName: "Grace Hopper", Email: "grace@example.com", Department: "Product"},
		employee.Employee{EmployeeID: "E3", FullName: "Alan Turing", Email: "alan@example.com", Department: "Design"},
	)

	repo := restapi.NewAttendanceRepository(restapi.NewClient(backend.URL(), 2*time.Second))
	pub := &recordingPublisher{}
	clk := clock.Fixed(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	return backend, NewAttendanceService(repo, pub, clk), pub
}

func bulkBody(t *testing.T, req restapitest.RecordedRequest) attendance.BulkAttendanceRequest {
	t.Helper()
	var body attendance.BulkAttendanceRequest
	require.NoError(t, json.Unmarshal(req.Body, &body))
	return body
}

func TestBulkMark_SendsOneTuplePerSelectedEmployee(t *testing.T) {
	backend, svc, pub := setup(t)
	table := attendance.NewDayTable(testDate, time.Second, nil)
	table.ToggleAll([]string{"E1", "E2", "E3"})

	n, err := svc.BulkMark(context.Background(), table, attendance.StatusPresent)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	reqs := backend.Requests("POST /api/attendance/bulk")
	require.Len(t, reqs, 1)
	body := bulkBody(t, reqs[0])
	require.Len(t, body.Records, 3)
	for _, r := range body.Records {
		assert.Equal(t, testDate, r.Date)
		assert.Equal(t, attendance.StatusPresent, r.Status)
	}

	assert.Empty(t, table.Selection(), "selection is cleared after success")
	assert.Contains(t, pub.All(), refresh.Invalidation{Topic: refresh.TopicAttendanceByDate, Key: testDate})
}

func TestBulkMark_EmptySelectionIsNoop(t *testing.T) {
	backend, svc, pub := setup(t)
	table := attendance.NewDayTable(testDate, time.Second, nil)

	n, err := svc.BulkMark(context.Background(), table, attendance.StatusAbsent)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, backend.Requests("POST"))
	assert.Empty(t, pub.All())
}

func TestBulkMark_RejectsOverlap(t *testing.T) {
	_, svc, _ := setup(t)
	table := attendance.NewDayTable(testDate, time.Second, nil)
	table.Toggle("E1")
	require.NoError(t, table.Bulk().Begin())

	_, err := svc.BulkMark(context.Background(), table, attendance.StatusAbsent)
	assert.ErrorIs(t, err, attendance.ErrBulkInFlight)
	assert.Equal(t, []string{"E1"}, table.Selection(), "rejected bulk keeps the selection")
}

func TestBulkMark_BackendFailureKeepsSelection(t *testing.T) {
	backend, svc, _ := setup(t)
	backend.Fail(http.MethodPost, "/api/attendance/bulk", http.StatusInternalServerError, `{"detail":"Bulk update failed"}`)
	table := attendance.NewDayTable(testDate, time.Second, nil)
	table.Toggle("E2")

	_, err := svc.BulkMark(context.Background(), table, attendance.StatusAbsent)
	require.Error(t, err)
	apiErr, ok := restapi.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Bulk update failed", apiErr.Message)
	assert.Equal(t, []string{"E2"}, table.Selection())
	assert.Equal(t, mutation.Failed, table.Bulk().State())
}

func TestMarkRowThenBulk_LastWriteWins(t *testing.T) {
	backend, svc, _ := setup(t)
	ctx := context.Background()
	table := attendance.NewDayTable(testDate, 10*time.Millisecond, nil)

	_, err := svc.MarkRow(ctx, table, "E1", attendance.StatusPresent)
	require.NoError(t, err)

	table.Toggle("E1")
	table.Toggle("E2")
	n, err := svc.BulkMark(ctx, table, attendance.StatusAbsent)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, id := range []string{"E1", "E2"} {
		rec, ok := backend.Record(id, testDate)
		require.True(t, ok)
		assert.Equal(t, attendance.StatusAbsent, rec.Status, id)
	}
	assert.Equal(t, 2, backend.RecordCount())
}

func TestMarkRow_FlashAndBusy(t *testing.T) {
	_, svc, pub := setup(t)
	settled := make(chan string, 1)
	table := attendance.NewDayTable(testDate, 20*time.Millisecond, func(date, employeeID string) {
		settled <- employeeID
	})

	require.NoError(t, table.Row("E1").Begin())
	_, err := svc.MarkRow(context.Background(), table, "E1", attendance.StatusPresent)
	assert.ErrorIs(t, err, attendance.ErrRowBusy)
	require.NoError(t, table.Row("E1").Fail(nil))

	_, err = svc.MarkRow(context.Background(), table, "E2", attendance.StatusPresent)
	require.NoError(t, err)
	assert.Equal(t, mutation.Succeeded, table.RowState("E2"))
	assert.Contains(t, pub.All(), refresh.Invalidation{Topic: refresh.TopicAttendanceByEmployee, Key: "E2"})

	select {
	case id := <-settled:
		assert.Equal(t, "E2", id)
	case <-time.After(time.Second):
		t.Fatal("row never settled")
	}
	assert.Equal(t, mutation.Idle, table.RowState("E2"))

	_, err = svc.MarkRow(context.Background(), table, "E2", "Late")
	assert.ErrorIs(t, err, attendance.ErrInvalidStatus)
}

func TestMarkAttendance_ValidatesBeforeNetwork(t *testing.T) {
	backend, svc, _ := setup(t)

	_, err := svc.MarkAttendance(context.Background(), attendance.MarkAttendanceRequest{
		EmployeeID: "", Date: testDate, Status: attendance.StatusPresent,
	})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "Please select an employee", errs.ToMap()["employee_id"])

	_, err = svc.MarkAttendance(context.Background(), attendance.MarkAttendanceRequest{
		EmployeeID: "E1", Date: "2024-03-02", Status: attendance.StatusPresent,
	})
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "Date cannot be in the future", errs.ToMap()["date"])

	assert.Empty(t, backend.Requests("POST"))
}

func TestMarkAttendance_UpsertTwice(t *testing.T) {
	backend, svc, pub := setup(t)
	ctx := context.Background()

	_, err := svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{EmployeeID: "E3", Date: "2024-02-28", Status: attendance.StatusPresent})
	require.NoError(t, err)
	_, err = svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{EmployeeID: "E3", Date: "2024-02-28", Status: attendance.StatusAbsent})
	require.NoError(t, err)

	assert.Equal(t, 1, backend.RecordCount())
	assert.Contains(t, pub.All(), refresh.Invalidation{Topic: refresh.TopicDashboard})
}

func TestHistory_JoinedFetch(t *testing.T) {
	backend, svc, _ := setup(t)
	ctx := context.Background()

	for _, d := range []string{"2024-02-27", "2024-02-28", "2024-02-29"} {
		_, err := svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{EmployeeID: "E1", Date: d, Status: attendance.StatusPresent})
		require.NoError(t, err)
	}

	h, err := svc.History(ctx, "E1", attendance.HistoryFilter{DateTo: "2024-02-27"})
	require.NoError(t, err)
	assert.Len(t, h.Records, 1)
	assert.Equal(t, 3, h.Summary.TotalDays, "summary ignores the filter")

	backend.Fail(http.MethodGet, "/api/attendance/E1/summary", http.StatusInternalServerError, `{"detail":"boom"}`)
	_, err = svc.History(ctx, "E1", attendance.HistoryFilter{})
	require.Error(t, err)
	assert.Equal(t, "failed to load attendance history: boom", err.Error())

	_, err = svc.History(ctx, "", attendance.HistoryFilter{})
	assert.ErrorIs(t, err, attendance.ErrNoEmployee)
}

func TestDayRoster(t *testing.T) {
	_, svc, _ := setup(t)

	roster, err := svc.DayRoster(context.Background(), testDate)
	require.NoError(t, err)
	assert.Equal(t, 3, roster.Unmarked)
	assert.Equal(t, []string{"E1", "E2", "E3"}, roster.EmployeeIDs())

	_, err = svc.DayRoster(context.Background(), "yesterday")
	var errs validator.ValidationErrors
	assert.ErrorAs(t, err, &errs)
}
