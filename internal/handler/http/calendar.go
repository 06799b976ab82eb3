package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/calendar"
	"github.com/cmlabs-hris/hrms-lite-web/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/validator"
)

// CalendarHandler moves the session's calendar picker.
type CalendarHandler interface {
	Navigate(w http.ResponseWriter, r *http.Request)
	Select(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct {
	calendarService calendar.CalendarService
}

func NewCalendarHandler(calendarService calendar.CalendarService) CalendarHandler {
	return &calendarHandlerImpl{calendarService: calendarService}
}

type navigateRequest struct {
	Delta int `json:"delta"`
}

type navigateResponse struct {
	Month string `json:"month"`
	Label string `json:"label"`
}

// Navigate handles POST /ui/api/calendar/navigate
func (h *calendarHandlerImpl) Navigate(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req navigateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Delta < -12 || req.Delta > 12 {
		response.ValidationError(w, map[string]string{"delta": "delta must be between -12 and 12"})
		return
	}

	m := sess.Picker.Navigate(req.Delta)
	response.Success(w, navigateResponse{Month: m.Key(), Label: m.Label()})
}

type selectRequest struct {
	Date string `json:"date"`
}

type selectResponse struct {
	SelectedDate string `json:"selected_date"`
	Changed      bool   `json:"changed"`
}

// Select handles POST /ui/api/calendar/select. Future dates are ignored.
func (h *calendarHandlerImpl) Select(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req selectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if _, valid := validator.IsValidDate(req.Date); !valid {
		response.ValidationError(w, map[string]string{"date": "date must be in YYYY-MM-DD format"})
		return
	}

	changed := sess.Picker.Select(req.Date, h.calendarService.Today())
	response.Success(w, selectResponse{
		SelectedDate: sess.Picker.Selected(),
		Changed:      changed,
	})
}
