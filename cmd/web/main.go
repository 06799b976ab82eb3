package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hrms-lite-web/internal/config"
	appHTTP "github.com/cmlabs-hris/hrms-lite-web/internal/handler/http"
	"github.com/cmlabs-hris/hrms-lite-web/internal/handler/http/view"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/clock"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/cron"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/readiness"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/refresh"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/sse"
	"github.com/cmlabs-hris/hrms-lite-web/internal/repository/restapi"
	attendanceService "github.com/cmlabs-hris/hrms-lite-web/internal/service/attendance"
	calendarService "github.com/cmlabs-hris/hrms-lite-web/internal/service/calendar"
	dashboardService "github.com/cmlabs-hris/hrms-lite-web/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hrms-lite-web/internal/service/employee"
	"github.com/cmlabs-hris/hrms-lite-web/internal/service/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	clk := clock.New(cfg.App.Timezone)

	client := restapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	employeeRepo := restapi.NewEmployeeRepository(client)
	attendanceRepo := restapi.NewAttendanceRepository(client)
	dashboardRepo := restapi.NewDashboardRepository(client)

	hub := sse.NewHub()
	notifier := refresh.NewNotifier(hub)
	gate := readiness.NewGate()

	// A row settles once its saved flash ends; only then does the date view
	// refetch, so the flash is not cut short by a re-render.
	store := session.NewStore(cfg.Session.TTL, cfg.UI.RowFlashWindow, clk, func(date, employeeID string) {
		notifier.Invalidate(refresh.Invalidation{Topic: refresh.TopicAttendanceByDate, Key: date})
	})
	JWTService := jwt.NewJWTService(cfg.Session.Secret, cfg.Session.TTL, cfg.IsProduction())

	employeeSvc := employeeService.NewEmployeeService(employeeRepo, notifier)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, notifier, clk)
	calendarSvc := calendarService.NewCalendarService(attendanceRepo, clk)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo)

	scheduler := cron.NewScheduler()
	readinessJobs := cron.NewReadinessJobs(gate, client, cfg.API.Timeout, func(status readiness.Status) {
		hub.Publish(readiness.HubKey, sse.Event{Event: readiness.EventName, Data: status})
	})
	readinessJobs.RegisterJobs(scheduler, cfg.API.HealthPollInterval)
	cron.NewSessionJobs(store).RegisterJobs(scheduler, cfg.Session.CleanupInterval)
	scheduler.Start()

	renderer, err := view.New()
	if err != nil {
		slog.Error("Failed to parse templates", "error", err)
		os.Exit(1)
	}
	pages := appHTTP.NewPages(renderer, gate)

	router := appHTTP.NewRouter(cfg, store, JWTService, appHTTP.Handlers{
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc, pages),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc, pages),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, employeeSvc, calendarSvc, pages),
		Calendar:   appHTTP.NewCalendarHandler(calendarSvc),
		Events:     appHTTP.NewEventHandler(notifier, gate),
	})

	// Event streams only end when their request context does.
	streamCtx, cancelStreams := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return streamCtx },
	}
	srv.RegisterOnShutdown(cancelStreams)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server running", "addr", srv.Addr, "api", cfg.API.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	scheduler.Stop()
}
