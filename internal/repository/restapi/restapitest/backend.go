// Package restapitest runs an in-memory HRMS backend for tests. It follows
// the backend's contract: attendance is keyed by (employee_id, date) and
// deleting an employee removes their attendance.
package restapitest

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/clock"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
)

// RecordedRequest is one call the backend received.
type RecordedRequest struct {
	Method    string
	Path      string
	RequestID string
	Body      []byte
}

type failure struct {
	status int
	body   string
}

type recordKey struct {
	employeeID string
	date       string
}

// Backend is a fake HRMS REST API served over httptest.
type Backend struct {
	mu             sync.Mutex
	server         *httptest.Server
	today          string
	employees      []employee.Employee
	records        map[recordKey]attendance.Record
	nextID         int
	requests       []RecordedRequest
	failures       map[string]failure
	healthFailures int
}

// NewBackend starts a backend whose "today" is today (YYYY-MM-DD).
func NewBackend(today string) *Backend {
	b := &Backend{
		today:    today,
		records:  make(map[recordKey]attendance.Record),
		failures: make(map[string]failure),
		nextID:   1,
	}
	b.server = httptest.NewServer(b.routes())
	return b
}

func (b *Backend) URL() string {
	return b.server.URL
}

func (b *Backend) Close() {
	b.server.Close()
}

// SeedEmployees adds employees as if created through the API.
func (b *Backend) SeedEmployees(emps ...employee.Employee) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range emps {
		b.insertEmployeeLocked(e)
	}
}

// Fail makes every "METHOD /path" request answer with status and body until
// cleared with Fail(method, path, 0, "").
func (b *Backend) Fail(method, path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := method + " " + path
	if status == 0 {
		delete(b.failures, key)
		return
	}
	b.failures[key] = failure{status: status, body: body}
}

// FailHealth makes the next n health probes answer 503.
func (b *Backend) FailHealth(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.healthFailures = n
}

// Record returns the stored record for (employeeID, date).
func (b *Backend) Record(employeeID, date string) (attendance.Record, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.records[recordKey{employeeID, date}]
	return r, ok
}

// RecordCount is the number of stored attendance records.
func (b *Backend) RecordCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.records)
}

// Requests returns received requests whose "METHOD /path" starts with prefix.
func (b *Backend) Requests(prefix string) []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []RecordedRequest
	for _, r := range b.requests {
		if strings.HasPrefix(r.Method+" "+r.Path, prefix) {
			out = append(out, r)
		}
	}
	return out
}

func (b *Backend) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(b.record)

	r.Get("/health", b.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", b.dashboard)
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", b.listEmployees)
			r.Post("/", b.createEmployee)
			r.Delete("/{id}", b.deleteEmployee)
		})
		r.Route("/attendance", func(r chi.Router) {
			r.Post("/", b.upsert)
			r.Post("/bulk", b.bulk)
			r.Get("/date/{date}", b.byDate)
			r.Get("/calendar/{year}/{month}", b.calendar)
			r.Get("/{employeeID}", b.listByEmployee)
			r.Get("/{employeeID}/summary", b.summary)
		})
	})
	return r
}

// record logs the request and short-circuits injected failures.
func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		b.mu.Lock()
		b.requests = append(b.requests, RecordedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			RequestID: r.Header.Get(middleware.RequestIDHeader),
			Body:      body,
		})
		f, failing := b.failures[r.Method+" "+r.URL.Path]
		b.mu.Unlock()

		if failing {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(f.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func (b *Backend) health(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	failing := b.healthFailures > 0
	if failing {
		b.healthFailures--
	}
	b.mu.Unlock()

	if failing {
		writeDetail(w, http.StatusServiceUnavailable, "starting")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (b *Backend) dashboard(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	counts := dashboard.Counts{TotalEmployees: len(b.employees)}
	for _, e := range b.employees {
		rec, ok := b.records[recordKey{e.EmployeeID, b.today}]
		switch {
		case !ok:
			counts.UnmarkedToday++
		case rec.Status == attendance.StatusPresent:
			counts.PresentToday++
		default:
			counts.AbsentToday++
		}
	}
	writeJSON(w, http.StatusOK, counts)
}

func (b *Backend) listEmployees(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	emps := make([]employee.Employee, len(b.employees))
	// newest first
	for i, e := range b.employees {
		emps[len(b.employees)-1-i] = e
	}
	writeJSON(w, http.StatusOK, employee.ListEmployeeResponse{Employees: emps, Total: len(emps)})
}

func (b *Backend) createEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.EmployeeID == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"detail": []map[string]interface{}{{"loc": []string{"body", "employee_id"}, "msg": "Employee ID is required"}},
		})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range b.employees {
		if e.EmployeeID == req.EmployeeID {
			writeDetail(w, http.StatusConflict, fmt.Sprintf("Employee with ID '%s' already exists", req.EmployeeID))
			return
		}
		if strings.EqualFold(e.Email, req.Email) {
			writeDetail(w, http.StatusConflict, fmt.Sprintf("Employee with email '%s' already exists", req.Email))
			return
		}
	}

	created := b.insertEmployeeLocked(employee.Employee{
		EmployeeID: req.EmployeeID,
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
	})
	writeJSON(w, http.StatusCreated, created)
}

func (b *Backend) insertEmployeeLocked(e employee.Employee) employee.Employee {
	e.ID = b.nextID
	b.nextID++
	now := clock.Timestamp{Time: time.Now().UTC()}
	e.CreatedAt = now
	e.UpdatedAt = now
	b.employees = append(b.employees, e)
	return e
}

func (b *Backend) findEmployeeLocked(employeeID string) (employee.Employee, bool) {
	for _, e := range b.employees {
		if e.EmployeeID == employeeID {
			return e, true
		}
	}
	return employee.Employee{}, false
}

func (b *Backend) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b.mu.Lock()
	defer b.mu.Unlock()
	idx := -1
	for i, e := range b.employees {
		if e.EmployeeID == id {
			idx = i
		}
	}
	if idx < 0 {
		writeDetail(w, http.StatusNotFound, fmt.Sprintf("Employee with ID '%s' not found", id))
		return
	}

	b.employees = append(b.employees[:idx], b.employees[idx+1:]...)
	for k := range b.records {
		if k.employeeID == id {
			delete(b.records, k)
		}
	}
	writeJSON(w, http.StatusOK, employee.DeleteEmployeeResponse{Message: fmt.Sprintf("Employee '%s' deleted successfully", id)})
}

// upsertLocked returns a non-zero status and a detail message on failure.
func (b *Backend) upsertLocked(req attendance.MarkAttendanceRequest) (attendance.Record, int, string) {
	if _, ok := b.findEmployeeLocked(req.EmployeeID); !ok {
		return attendance.Record{}, http.StatusNotFound, fmt.Sprintf("Employee with ID '%s' not found", req.EmployeeID)
	}
	if !req.Status.IsValid() {
		return attendance.Record{}, http.StatusUnprocessableEntity, "Status must be 'Present' or 'Absent'"
	}

	key := recordKey{req.EmployeeID, req.Date}
	rec, ok := b.records[key]
	if !ok {
		rec = attendance.Record{ID: b.nextID, EmployeeID: req.EmployeeID, Date: req.Date, CreatedAt: clock.Timestamp{Time: time.Now().UTC()}}
		b.nextID++
	}
	rec.Status = req.Status
	b.records[key] = rec
	return rec, 0, ""
}

func (b *Backend) upsert(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	rec, status, problem := b.upsertLocked(req)
	if status != 0 {
		writeDetail(w, status, problem)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (b *Backend) bulk(w http.ResponseWriter, r *http.Request) {
	var req attendance.BulkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	type failed struct {
		EmployeeID string `json:"employee_id"`
		Error      string `json:"error"`
	}
	results := []attendance.Record{}
	failures := []failed{}
	for _, item := range req.Records {
		rec, status, problem := b.upsertLocked(item)
		if status != 0 {
			failures = append(failures, failed{EmployeeID: item.EmployeeID, Error: problem})
			continue
		}
		results = append(results, rec)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": len(results),
		"failed":  failures,
		"results": results,
	})
}

func (b *Backend) byDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	b.mu.Lock()
	defer b.mu.Unlock()
	roster := attendance.DayRoster{Date: date, Records: []attendance.RosterRow{}}
	for _, e := range b.employees {
		row := attendance.RosterRow{EmployeeID: e.EmployeeID, FullName: e.FullName, Department: e.Department}
		if rec, ok := b.records[recordKey{e.EmployeeID, date}]; ok {
			status := rec.Status
			row.Status = &status
			if status == attendance.StatusPresent {
				roster.Present++
			} else {
				roster.Absent++
			}
		} else {
			roster.Unmarked++
		}
		roster.Records = append(roster.Records, row)
	}
	writeJSON(w, http.StatusOK, roster)
}

func (b *Backend) calendar(w http.ResponseWriter, r *http.Request) {
	year, errY := strconv.Atoi(chi.URLParam(r, "year"))
	month, errM := strconv.Atoi(chi.URLParam(r, "month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		writeDetail(w, http.StatusBadRequest, "year and month must be integers")
		return
	}
	prefix := fmt.Sprintf("%04d-%02d-", year, month)

	b.mu.Lock()
	defer b.mu.Unlock()
	byDate := make(map[string]*attendance.DayCount)
	for k, rec := range b.records {
		if !strings.HasPrefix(k.date, prefix) {
			continue
		}
		dc, ok := byDate[k.date]
		if !ok {
			dc = &attendance.DayCount{Date: k.date}
			byDate[k.date] = dc
		}
		if rec.Status == attendance.StatusPresent {
			dc.Present++
		} else {
			dc.Absent++
		}
	}

	summary := attendance.MonthSummary{Year: year, Month: month, Days: []attendance.DayCount{}}
	for _, dc := range byDate {
		summary.Days = append(summary.Days, *dc)
	}
	sort.Slice(summary.Days, func(i, j int) bool { return summary.Days[i].Date < summary.Days[j].Date })
	writeJSON(w, http.StatusOK, summary)
}

func (b *Backend) listByEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "employeeID")
	from := r.URL.Query().Get("date_from")
	to := r.URL.Query().Get("date_to")

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.findEmployeeLocked(id); !ok {
		writeDetail(w, http.StatusNotFound, fmt.Sprintf("Employee with ID '%s' not found", id))
		return
	}

	records := []attendance.Record{}
	for k, rec := range b.records {
		if k.employeeID != id || (from != "" && k.date < from) || (to != "" && k.date > to) {
			continue
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date > records[j].Date })
	writeJSON(w, http.StatusOK, attendance.ListAttendanceResponse{Records: records, Total: len(records)})
}

func (b *Backend) summary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "employeeID")

	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.findEmployeeLocked(id)
	if !ok {
		writeDetail(w, http.StatusNotFound, fmt.Sprintf("Employee with ID '%s' not found", id))
		return
	}

	s := attendance.Summary{EmployeeID: id, FullName: e.FullName}
	for k, rec := range b.records {
		if k.employeeID != id {
			continue
		}
		s.TotalDays++
		if rec.Status == attendance.StatusPresent {
			s.PresentDays++
		} else {
			s.AbsentDays++
		}
	}
	writeJSON(w, http.StatusOK, s)
}
