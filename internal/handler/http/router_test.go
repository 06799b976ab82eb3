package http

import (
	"bytes"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-lite-web/internal/config"
	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-web/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-lite-web/internal/handler/http/view"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/clock"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/readiness"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/refresh"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/sse"
	"github.com/cmlabs-hris/hrms-lite-web/internal/repository/restapi"
	"github.com/cmlabs-hris/hrms-lite-web/internal/repository/restapi/restapitest"
	attendanceService "github.com/cmlabs-hris/hrms-lite-web/internal/service/attendance"
	calendarService "github.com/cmlabs-hris/hrms-lite-web/internal/service/calendar"
	dashboardService "github.com/cmlabs-hris/hrms-lite-web/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hrms-lite-web/internal/service/employee"
	"github.com/cmlabs-hris/hrms-lite-web/internal/service/session"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestToday = "2024-03-01"

type testApp struct {
	backend *restapitest.Backend
	server  *httptest.Server
	client  *http.Client
	gate    *readiness.Gate
	store   *session.Store
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	backend := restapitest.NewBackend(handlerTestToday)
	t.Cleanup(backend.Close)

	cfg := &config.Config{
		App:     config.AppConfig{Port: 0, Env: "test", LogLevel: "error", Timezone: time.UTC},
		API:     config.APIConfig{BaseURL: backend.URL(), Timeout: 2 * time.Second, HealthPollInterval: time.Second},
		Session: config.SessionConfig{Secret: "test-session-secret", TTL: time.Hour, CleanupInterval: time.Minute},
	}

	clk := clock.Fixed(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	client := restapi.NewClient(backend.URL(), cfg.API.Timeout)
	employeeRepo := restapi.NewEmployeeRepository(client)
	attendanceRepo := restapi.NewAttendanceRepository(client)

	hub := sse.NewHub()
	notifier := refresh.NewNotifier(hub)
	gate := readiness.NewGate()
	store := session.NewStore(cfg.Session.TTL, 0, clk, func(date, employeeID string) {
		notifier.Invalidate(refresh.Invalidation{Topic: refresh.TopicAttendanceByDate, Key: date})
	})
	tokens := jwt.NewJWTService(cfg.Session.Secret, cfg.Session.TTL, false)

	renderer, err := view.New()
	require.NoError(t, err)
	pages := NewPages(renderer, gate)

	empSvc := employeeService.NewEmployeeService(employeeRepo, notifier)
	attSvc := attendanceService.NewAttendanceService(attendanceRepo, notifier, clk)
	calSvc := calendarService.NewCalendarService(attendanceRepo, clk)
	dashSvc := dashboardService.NewDashboardService(restapi.NewDashboardRepository(client))

	router := NewRouter(cfg, store, tokens, Handlers{
		Dashboard:  NewDashboardHandler(dashSvc, pages),
		Employee:   NewEmployeeHandler(empSvc, pages),
		Attendance: NewAttendanceHandler(attSvc, empSvc, calSvc, pages),
		Calendar:   NewCalendarHandler(calSvc),
		Events:     NewEventHandler(notifier, gate),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testApp{
		backend: backend,
		server:  server,
		client:  &http.Client{Jar: jar, Timeout: 5 * time.Second},
		gate:    gate,
		store:   store,
	}
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}, headers ...string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := a.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeEnvelope(t *testing.T, raw []byte, data interface{}) response.Response {
	t.Helper()
	var env struct {
		response.Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env.Response
}

func seedTeam(a *testApp) {
	a.backend.SeedEmployees(
		employee.Employee{EmployeeID: "E1", FullName: "Ada Lovelace", Email: "ada@example.com", Department: "Engineering"},
		employee.Employee{EmployeeID: "E2", FullName: "Grace Hopper", Email: "grace@example.com", Department: "Product"},
	)
}

func TestRouter_RootRedirectsToDashboard(t *testing.T) {
	app := newTestApp(t)
	app.client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, _ := app.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestDashboardPage_EmptyBackendShowsZeros(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.do(t, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	html := string(body)
	assert.Contains(t, html, "<!doctype html>")
	assert.Contains(t, html, `<span class="card-value">0</span>`)
	assert.Contains(t, html, "wake-banner")

	var sessionCookie bool
	for _, c := range resp.Cookies() {
		if c.Name == jwt.CookieName {
			sessionCookie = true
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, sessionCookie, "first visit issues a session cookie")
	assert.Equal(t, 1, app.store.Len())
}

func TestDashboardPage_FragmentAfterReady(t *testing.T) {
	app := newTestApp(t)
	seedTeam(app)
	app.gate.MarkReady()

	resp, body := app.do(t, http.MethodGet, "/dashboard", nil, view.FragmentHeader, "content")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	html := string(body)
	assert.NotContains(t, html, "<!doctype html>")
	assert.NotContains(t, html, "wake-banner")
	assert.Contains(t, html, `<span class="card-value">2</span>`)
}

func TestDashboardPage_BackendErrorShowsBanner(t *testing.T) {
	app := newTestApp(t)
	app.backend.Fail(http.MethodGet, "/api/dashboard", http.StatusInternalServerError, `{"detail":"boom"}`)

	resp, body := app.do(t, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "banner-error")
	assert.Contains(t, string(body), "Retry")
}

func TestSession_ReusedAcrossRequests(t *testing.T) {
	app := newTestApp(t)

	app.do(t, http.MethodGet, "/dashboard", nil)
	app.do(t, http.MethodGet, "/employees", nil)
	assert.Equal(t, 1, app.store.Len())
}

func TestCreateEmployee_ValidationNeverReachesBackend(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.do(t, http.MethodPost, "/ui/api/employees", employee.CreateEmployeeRequest{})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	env := decodeEnvelope(t, body, nil)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Employee ID is required", env.Error.Details["employee_id"])
	assert.Contains(t, env.Error.Details, "email")
	assert.Empty(t, app.backend.Requests("POST /api/employees"))
}

func TestCreateEmployee_CreatedThenDuplicate(t *testing.T) {
	app := newTestApp(t)
	req := employee.CreateEmployeeRequest{
		EmployeeID: "E1",
		FullName:   "Ada Lovelace",
		Email:      "ada@example.com",
		Department: "Engineering",
	}

	resp, body := app.do(t, http.MethodPost, "/ui/api/employees", req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Employee added successfully", decodeEnvelope(t, body, nil).Message)

	resp, body = app.do(t, http.MethodPost, "/ui/api/employees", req)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	env := decodeEnvelope(t, body, nil)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Employee with ID 'E1' already exists", env.Error.Message)
}

func TestDeleteEmployee_NotFound(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.do(t, http.MethodDelete, "/ui/api/employees/NOPE", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	env := decodeEnvelope(t, body, nil)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Employee with ID 'NOPE' not found", env.Error.Message)
}

func TestEmployeesPage_ListsDirectory(t *testing.T) {
	app := newTestApp(t)
	seedTeam(app)

	resp, body := app.do(t, http.MethodGet, "/employees", nil, view.FragmentHeader, "content")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Ada Lovelace")
	assert.Contains(t, string(body), "Grace Hopper")
}

func TestCalendarSelect(t *testing.T) {
	app := newTestApp(t)

	var sel selectResponse
	resp, body := app.do(t, http.MethodPost, "/ui/api/calendar/select", selectRequest{Date: "2024-03-05"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeEnvelope(t, body, &sel)
	assert.False(t, sel.Changed, "future dates are not selectable")
	assert.Empty(t, sel.SelectedDate)

	resp, body = app.do(t, http.MethodPost, "/ui/api/calendar/select", selectRequest{Date: handlerTestToday})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeEnvelope(t, body, &sel)
	assert.True(t, sel.Changed)
	assert.Equal(t, handlerTestToday, sel.SelectedDate)

	resp, _ = app.do(t, http.MethodPost, "/ui/api/calendar/select", selectRequest{Date: "03/01/2024"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCalendarNavigate(t *testing.T) {
	app := newTestApp(t)

	var nav navigateResponse
	resp, body := app.do(t, http.MethodPost, "/ui/api/calendar/navigate", navigateRequest{Delta: -1})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeEnvelope(t, body, &nav)
	assert.Equal(t, "2024-02", nav.Month)
	assert.Equal(t, "February 2024", nav.Label)
}

func TestAttendancePage_RosterForSelectedDate(t *testing.T) {
	app := newTestApp(t)
	seedTeam(app)

	_, body := app.do(t, http.MethodGet, "/attendance", nil, view.FragmentHeader, "content")
	assert.Contains(t, string(body), "Select a date on the calendar")

	app.do(t, http.MethodPost, "/ui/api/calendar/select", selectRequest{Date: handlerTestToday})

	resp, body := app.do(t, http.MethodGet, "/attendance", nil, view.FragmentHeader, "content")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	html := string(body)
	assert.Contains(t, html, "March 2024")
	assert.Contains(t, html, "Ada Lovelace")
	assert.Contains(t, html, "2 unmarked")
}

func TestAttendance_RowAndBulkMarking(t *testing.T) {
	app := newTestApp(t)
	seedTeam(app)
	base := "/ui/api/attendance/" + handlerTestToday

	var record attendance.Record
	resp, body := app.do(t, http.MethodPost, base+"/rows/E1", statusRequest{Status: attendance.StatusPresent})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	env := decodeEnvelope(t, body, &record)
	assert.Equal(t, "Marked Present", env.Message)
	assert.Equal(t, attendance.StatusPresent, record.Status)

	var bulk bulkResponse
	resp, body = app.do(t, http.MethodPost, base+"/bulk", statusRequest{Status: attendance.StatusAbsent})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeEnvelope(t, body, &bulk)
	assert.Zero(t, bulk.Updated, "empty selection sends nothing")
	assert.Empty(t, app.backend.Requests("POST /api/attendance/bulk"))

	var sel selectionResponse
	resp, body = app.do(t, http.MethodPost, base+"/selection/all", toggleRequest{EmployeeIDs: []string{"E1", "E2"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeEnvelope(t, body, &sel)
	assert.True(t, sel.AllSelected)
	assert.ElementsMatch(t, []string{"E1", "E2"}, sel.Selected)

	resp, body = app.do(t, http.MethodPost, base+"/bulk", statusRequest{Status: attendance.StatusAbsent})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	env = decodeEnvelope(t, body, &bulk)
	assert.Equal(t, 2, bulk.Updated)
	assert.Equal(t, "Updated 2 records", env.Message)
	assert.Len(t, app.backend.Requests("POST /api/attendance/bulk"), 1)

	rec, ok := app.backend.Record("E1", handlerTestToday)
	require.True(t, ok)
	assert.Equal(t, attendance.StatusAbsent, rec.Status)

	resp, body = app.do(t, http.MethodPost, base+"/selection", toggleRequest{EmployeeID: "E1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeEnvelope(t, body, &sel)
	assert.Equal(t, []string{"E1"}, sel.Selected, "bulk success cleared the selection")
}

func TestAttendance_InvalidDateParam(t *testing.T) {
	app := newTestApp(t)

	resp, _ := app.do(t, http.MethodPost, "/ui/api/attendance/2024-13-40/rows/E1", statusRequest{Status: attendance.StatusPresent})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestMarkAttendanceForm(t *testing.T) {
	app := newTestApp(t)
	seedTeam(app)

	resp, body := app.do(t, http.MethodPost, "/ui/api/attendance", attendance.MarkAttendanceRequest{
		Date:   "2024-03-02",
		Status: attendance.StatusPresent,
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	env := decodeEnvelope(t, body, nil)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Please select an employee", env.Error.Details["employee_id"])
	assert.Equal(t, "Date cannot be in the future", env.Error.Details["date"])

	resp, _ = app.do(t, http.MethodPost, "/ui/api/attendance", attendance.MarkAttendanceRequest{
		EmployeeID: "E2",
		Date:       handlerTestToday,
		Status:     attendance.StatusPresent,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, ok := app.backend.Record("E2", handlerTestToday)
	assert.True(t, ok)
}

func TestHistory_SelectFilterClear(t *testing.T) {
	app := newTestApp(t)
	seedTeam(app)
	app.do(t, http.MethodPost, "/ui/api/attendance", attendance.MarkAttendanceRequest{
		EmployeeID: "E1", Date: "2024-02-28", Status: attendance.StatusAbsent,
	})
	app.do(t, http.MethodPost, "/ui/api/attendance", attendance.MarkAttendanceRequest{
		EmployeeID: "E1", Date: handlerTestToday, Status: attendance.StatusPresent,
	})

	resp, _ := app.do(t, http.MethodPost, "/ui/api/history/filter", attendance.HistoryFilter{DateFrom: "2024-03-01"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "no employee selected yet")

	resp, _ = app.do(t, http.MethodPost, "/ui/api/history/employee", toggleRequest{EmployeeID: "E1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body := app.do(t, http.MethodGet, "/attendance/history", nil, view.FragmentHeader, "content")
	html := string(body)
	assert.Contains(t, html, "2024-02-28")
	assert.Contains(t, html, handlerTestToday)
	assert.Contains(t, html, "50%")

	resp, _ = app.do(t, http.MethodPost, "/ui/api/history/filter", attendance.HistoryFilter{DateFrom: "2024-03-01"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = app.do(t, http.MethodGet, "/attendance/history", nil, view.FragmentHeader, "content")
	html = string(body)
	assert.NotContains(t, html, "2024-02-28")
	assert.Contains(t, html, "50%", "summary ignores the filter")

	resp, _ = app.do(t, http.MethodDelete, "/ui/api/history/filter", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, body = app.do(t, http.MethodGet, "/attendance/history", nil, view.FragmentHeader, "content")
	assert.Contains(t, string(body), "2024-02-28")
}

func TestReadinessEndpoint(t *testing.T) {
	app := newTestApp(t)

	var status readiness.Status
	_, body := app.do(t, http.MethodGet, "/readiness", nil)
	decodeEnvelope(t, body, &status)
	assert.False(t, status.Ready)

	app.gate.MarkReady()
	_, body = app.do(t, http.MethodGet, "/readiness", nil)
	decodeEnvelope(t, body, &status)
	assert.True(t, status.Ready)
	assert.Equal(t, readiness.PhaseReady, status.Phase)
}

func TestEventStream_ConnectedAndReadiness(t *testing.T) {
	app := newTestApp(t)
	app.gate.MarkReady()

	req, err := http.NewRequest(http.MethodGet, app.server.URL+"/events?topics=employees", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	buf := make([]byte, 4096)
	var got strings.Builder
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && !strings.Contains(got.String(), "event: readiness") {
		n, err := resp.Body.Read(buf)
		got.Write(buf[:n])
		if err != nil {
			break
		}
	}
	assert.Contains(t, got.String(), "event: connected")
	assert.Contains(t, got.String(), "event: readiness")
}
