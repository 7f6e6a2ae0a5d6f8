package http

import (
	"log/slog"
	"os"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/user"
	"github.com/cmlabs-hris/leave-calendar/internal/handler/http/middleware"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	AppName        string
	Version        string
	Env            string
	LogLevel       slog.Level
	AllowedOrigins []string
	RequestTimeout time.Duration
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	leaveHandler LeaveHandler,
	attendanceHandler AttendanceHandler,
	calendarHandler CalendarHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
		Level:       opts.LogLevel,
	})).With(
		slog.String("app", opts.AppName),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(chiMiddleware.Timeout(opts.RequestTimeout))
	}
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/leaves", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", leaveHandler.Apply)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveViewOwn))
					r.Post("/cancel", leaveHandler.Cancel)
					r.Get("/limits", leaveHandler.GetLimits)
					r.Get("/types", leaveHandler.ListTypes)
					r.Get("/scheduled", leaveHandler.ListScheduled)
					r.Get("/history", leaveHandler.ListHistory)
					r.Get("/upcoming", leaveHandler.ListUpcoming)
				})

				r.With(middleware.RequirePermission(user.PermissionCalendarView)).
					Get("/holidays", calendarHandler.UpcomingHolidays)

				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).
					Get("/monthly-overview", attendanceHandler.MonthlyOverview)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/pending", leaveHandler.ListPending)
					r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).Post("/{id}/{decision}", leaveHandler.Decide)
				})
			})

			r.Route("/calendar", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionCalendarView))
				r.Get("/working-days", calendarHandler.WorkingDays)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceViewOwn))
				r.Get("/monthly-overview/pdf", attendanceHandler.MonthlyOverviewPDF)
				r.Get("/working-days", attendanceHandler.WorkingDays)
				r.Get("/summary", attendanceHandler.Summary)
				r.Get("/late-clock-ins", attendanceHandler.LateClockIns)
				r.Get("/monthly-leaves", attendanceHandler.MonthlyLeaves)
				r.Get("/{date}", attendanceHandler.GetByDate)
			})
		})
	})

	return r
}
