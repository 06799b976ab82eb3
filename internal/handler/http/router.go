package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/hrms-lite-web/internal/config"
	"github.com/cmlabs-hris/hrms-lite-web/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-lite-web/internal/handler/http/view"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-lite-web/internal/service/session"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

const appVersion = "v1.0.0"

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Dashboard  DashboardHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Calendar   CalendarHandler
	Events     EventHandler
}

func NewRouter(cfg *config.Config, store *session.Store, tokens jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-lite"),
		slog.String("version", appVersion),
		slog.String("env", cfg.App.Env),
	)

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.SlogLevel(),
		Schema: httplog.SchemaECS,
		Skip: func(req *http.Request, respStatus int) bool {
			return req.URL.Path == "/ping"
		},
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))

	r.Handle("/static/*", view.Static())
	r.Get("/readiness", h.Events.Readiness)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})

	r.Group(func(r chi.Router) {
		if len(cfg.UI.AllowedOrigins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins:   cfg.UI.AllowedOrigins,
				AllowCredentials: true,
				AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
				AllowedHeaders:   []string{"Accept", "Content-Type", "X-Fragment", "X-Request-Id"},
				MaxAge:           300,
			}))
		}

		r.Get("/events", h.Events.Stream)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(store, tokens))

			r.Get("/dashboard", h.Dashboard.Page)
			r.Get("/employees", h.Employee.Page)
			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.Attendance.Page)
				r.Get("/history", h.Attendance.HistoryPage)
			})

			r.Route("/ui/api", func(r chi.Router) {
				r.Get("/dashboard", h.Dashboard.GetCounts)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employee.ListEmployees)
					r.Post("/", h.Employee.CreateEmployee)
					r.Delete("/{employeeID}", h.Employee.DeleteEmployee)
				})

				r.Route("/calendar", func(r chi.Router) {
					r.Post("/navigate", h.Calendar.Navigate)
					r.Post("/select", h.Calendar.Select)
				})

				r.Route("/attendance", func(r chi.Router) {
					r.Post("/", h.Attendance.MarkAttendance)
					r.Route("/{date}", func(r chi.Router) {
						r.Post("/selection", h.Attendance.ToggleSelection)
						r.Post("/selection/all", h.Attendance.ToggleAll)
						r.Post("/rows/{employeeID}", h.Attendance.MarkRow)
						r.Post("/bulk", h.Attendance.BulkMark)
					})
				})

				r.Route("/history", func(r chi.Router) {
					r.Post("/employee", h.Attendance.SelectHistoryEmployee)
					r.Post("/filter", h.Attendance.ApplyHistoryFilter)
					r.Delete("/filter", h.Attendance.ClearHistoryFilter)
				})
			})
		})
	})
	return r
}
