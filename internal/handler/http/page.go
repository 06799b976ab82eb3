package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-lite-web/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-lite-web/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-lite-web/internal/handler/http/view"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/readiness"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/refresh"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/validator"
	"github.com/cmlabs-hris/hrms-lite-web/internal/service/session"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

// Pages renders full pages with the shared layout state.
type Pages struct {
	renderer *view.Renderer
	gate     *readiness.Gate
}

func NewPages(renderer *view.Renderer, gate *readiness.Gate) *Pages {
	return &Pages{renderer: renderer, gate: gate}
}

func (p *Pages) render(w http.ResponseWriter, r *http.Request, name, title string, topics []refresh.Topic, data interface{}) {
	names := make([]string, 0, len(topics))
	for _, t := range topics {
		names = append(names, string(t))
	}

	p.renderer.Render(w, r, name, view.Page{
		Title:  title,
		Nav:    name,
		Ready:  p.gate.Ready(),
		Topics: names,
		Data:   data,
	})
}

// currentSession returns the request's session or answers 500.
func currentSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.InternalServerError(w, "Session unavailable")
		return nil, false
	}
	return sess, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// dateParam reads the {date} URL parameter, answering 422 when malformed.
func dateParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := chi.URLParam(r, "date")
	if _, ok := validator.IsValidDate(date); !ok {
		response.ValidationError(w, map[string]string{"date": "date must be in YYYY-MM-DD format"})
		return "", false
	}
	return date, true
}
