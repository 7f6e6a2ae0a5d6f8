package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/leave-calendar/internal/config"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	appHTTP "github.com/cmlabs-hris/leave-calendar/internal/handler/http"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/cache"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/cron"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/database"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/events"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/jwt"
	"github.com/cmlabs-hris/leave-calendar/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/leave-calendar/internal/service/attendance"
	calendarService "github.com/cmlabs-hris/leave-calendar/internal/service/calendar"
	leaveService "github.com/cmlabs-hris/leave-calendar/internal/service/leave"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})).With(
		slog.String("app", "leave-calendar"),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	if err := run(cfg); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns:       cfg.Database.MaxConns,
		MinConns:       cfg.Database.MinConns,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	holidayRepo := postgresql.NewHolidayRepository(db)
	summaryRepo := postgresql.NewWorkingDaysSummaryRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveQuotaRepo := postgresql.NewLeaveQuotaRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	var weekendRepo calendar.WeekendRepository = postgresql.NewWeekendRepository(db)
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Warn("Redis unreachable, weekend cache falls through to the database", "error", err)
		}
		weekendRepo = cache.NewWeekendRepository(weekendRepo, rdb, cfg.Redis.TTL)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RabbitMQ.Enabled {
		conn, err := amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			return fmt.Errorf("connect rabbitmq: %w", err)
		}
		defer conn.Close()

		ch, err := conn.Channel()
		if err != nil {
			return fmt.Errorf("open rabbitmq channel: %w", err)
		}
		defer ch.Close()

		amqpPublisher, err := events.NewAMQPPublisher(ch, cfg.RabbitMQ.Queue, cfg.RabbitMQ.PublishTimeout)
		if err != nil {
			return fmt.Errorf("declare queue: %w", err)
		}
		publisher = amqpPublisher
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	transactor := postgresql.NewTransactor(db)
	calendarSvc := calendarService.NewCalendarService(transactor, holidayRepo, weekendRepo, summaryRepo)
	leaveSvc := leaveService.NewLeaveService(
		transactor,
		leaveRequestRepo,
		leaveQuotaRepo,
		leaveTypeRepo,
		calendarSvc,
		publisher,
		cfg.ReservationMode(),
	)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		leaveRequestRepo,
		leaveQuotaRepo,
		calendarSvc,
		cfg.Calendar.OverviewFixedWeekend,
	)

	scheduler := cron.NewScheduler()
	cron.NewWorkingDaysJobs(weekendRepo, calendarSvc).RegisterJobs(scheduler, cfg.Calendar.SummaryInterval)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			AppName:        "leave-calendar",
			Version:        cfg.App.Version,
			Env:            cfg.App.Env,
			LogLevel:       cfg.SlogLevel(),
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			RequestTimeout: cfg.App.RequestTimeout,
		},
		JWTService,
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewCalendarHandler(calendarSvc),
	)

	srv := &http.Server{
		Addr:     fmt.Sprintf(":%d", cfg.App.Port),
		Handler:  router,
		ErrorLog: slog.NewLogLogger(slog.Default().Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-quit:
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}
