package http

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/calendar"
	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-web/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-lite-web/internal/handler/http/view"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/refresh"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

type AttendanceHandler interface {
	// Page renders the calendar, the mark form and the selected day's table
	Page(w http.ResponseWriter, r *http.Request)
	// HistoryPage renders one employee's records and summary
	HistoryPage(w http.ResponseWriter, r *http.Request)

	ToggleSelection(w http.ResponseWriter, r *http.Request)
	ToggleAll(w http.ResponseWriter, r *http.Request)
	MarkRow(w http.ResponseWriter, r *http.Request)
	BulkMark(w http.ResponseWriter, r *http.Request)
	MarkAttendance(w http.ResponseWriter, r *http.Request)

	SelectHistoryEmployee(w http.ResponseWriter, r *http.Request)
	ApplyHistoryFilter(w http.ResponseWriter, r *http.Request)
	ClearHistoryFilter(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	employeeService   employee.EmployeeService
	calendarService   calendar.CalendarService
	pages             *Pages
}

func NewAttendanceHandler(
	attendanceService attendance.AttendanceService,
	employeeService employee.EmployeeService,
	calendarService calendar.CalendarService,
	pages *Pages,
) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		employeeService:   employeeService,
		calendarService:   calendarService,
		pages:             pages,
	}
}

// Page handles GET /attendance
func (h *attendanceHandlerImpl) Page(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	data := view.AttendancePage{
		Weekdays:     calendar.Weekdays,
		Today:        h.calendarService.Today(),
		SelectedDate: sess.Picker.Selected(),
		Statuses:     attendance.Statuses,
	}

	var (
		roster    attendance.DayRoster
		rosterErr error
	)

	// Calendar dots and the selector degrade silently, so only the roster
	// can fail the section.
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		data.Grid = h.calendarService.Grid(ctx, sess.Picker)
		return nil
	})
	g.Go(func() error {
		data.Employees = h.employeeService.SelectorOptions(ctx)
		return nil
	})
	if data.SelectedDate != "" {
		g.Go(func() error {
			roster, rosterErr = h.attendanceService.DayRoster(ctx, data.SelectedDate)
			return nil
		})
	}
	_ = g.Wait()

	if data.SelectedDate != "" {
		if rosterErr != nil {
			data.RosterError = response.Message(rosterErr)
		} else {
			table := sess.Table(data.SelectedDate)
			ids := roster.EmployeeIDs()
			table.Prune(ids)

			data.Roster = &roster
			data.Rows = view.BuildRows(roster, table)
			data.AllSelected = table.AllSelected(ids)
			data.SelectedCount = len(table.Selection())
			data.BulkBusy = table.Bulk().Busy()
		}
	}

	h.pages.render(w, r, "attendance", "Attendance",
		[]refresh.Topic{refresh.TopicAttendanceByDate, refresh.TopicEmployees}, data)
}

// HistoryPage handles GET /attendance/history
func (h *attendanceHandlerImpl) HistoryPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	employeeID, filter := sess.History.Current()
	data := view.HistoryPage{
		Employees:  h.employeeService.SelectorOptions(r.Context()),
		EmployeeID: employeeID,
		Filter:     filter,
	}

	if employeeID != "" {
		history, err := h.attendanceService.History(r.Context(), employeeID, filter)
		if err != nil {
			data.Error = response.Message(err)
		} else {
			data.History = &history
		}
	}

	h.pages.render(w, r, "history", "Attendance History",
		[]refresh.Topic{refresh.TopicAttendanceByEmployee, refresh.TopicEmployees}, data)
}

type toggleRequest struct {
	EmployeeID  string   `json:"employee_id"`
	EmployeeIDs []string `json:"employee_ids"`
}

type selectionResponse struct {
	Selected    []string `json:"selected"`
	AllSelected bool     `json:"all_selected"`
}

// ToggleSelection handles POST /ui/api/attendance/{date}/selection
func (h *attendanceHandlerImpl) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	var req toggleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.EmployeeID == "" {
		response.ValidationError(w, map[string]string{"employee_id": "Employee ID is required"})
		return
	}

	table := sess.Table(date)
	table.Toggle(req.EmployeeID)
	response.Success(w, selectionResponse{Selected: table.Selection()})
}

// ToggleAll handles POST /ui/api/attendance/{date}/selection/all
func (h *attendanceHandlerImpl) ToggleAll(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	var req toggleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	table := sess.Table(date)
	table.ToggleAll(req.EmployeeIDs)
	response.Success(w, selectionResponse{
		Selected:    table.Selection(),
		AllSelected: table.AllSelected(req.EmployeeIDs),
	})
}

type statusRequest struct {
	Status attendance.Status `json:"status"`
}

// MarkRow handles POST /ui/api/attendance/{date}/rows/{employeeID}
func (h *attendanceHandlerImpl) MarkRow(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	record, err := h.attendanceService.MarkRow(r.Context(), sess.Table(date), chi.URLParam(r, "employeeID"), req.Status)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, fmt.Sprintf("Marked %s", record.Status), record)
}

type bulkResponse struct {
	Updated int `json:"updated"`
}

// BulkMark handles POST /ui/api/attendance/{date}/bulk
func (h *attendanceHandlerImpl) BulkMark(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	n, err := h.attendanceService.BulkMark(r.Context(), sess.Table(date), req.Status)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if n == 0 {
		response.Success(w, bulkResponse{})
		return
	}

	noun := "records"
	if n == 1 {
		noun = "record"
	}
	response.SuccessWithMessage(w, fmt.Sprintf("Updated %d %s", n, noun), bulkResponse{Updated: n})
}

// MarkAttendance handles POST /ui/api/attendance
func (h *attendanceHandlerImpl) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	record, err := h.attendanceService.MarkAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance marked successfully", record)
}

// SelectHistoryEmployee handles POST /ui/api/history/employee
func (h *attendanceHandlerImpl) SelectHistoryEmployee(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req toggleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sess.History.SelectEmployee(req.EmployeeID)
	response.Success(w, nil)
}

// ApplyHistoryFilter handles POST /ui/api/history/filter
func (h *attendanceHandlerImpl) ApplyHistoryFilter(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	var filter attendance.HistoryFilter
	if !decodeJSON(w, r, &filter) {
		return
	}

	if err := sess.History.ApplyFilter(filter); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, filter)
}

// ClearHistoryFilter handles DELETE /ui/api/history/filter
func (h *attendanceHandlerImpl) ClearHistoryFilter(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	sess.History.ClearFilter()
	response.Success(w, nil)
}
