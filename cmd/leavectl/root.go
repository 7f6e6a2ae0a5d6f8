package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/leave-calendar/internal/config"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/cache"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/database"
	"github.com/cmlabs-hris/leave-calendar/internal/repository/postgresql"
	calendarService "github.com/cmlabs-hris/leave-calendar/internal/service/calendar"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "leavectl",
		Short: "Operate the leave calendar from the command line",
		Long: `leavectl previews working days, imports holiday calendars, rebuilds
working-day summaries, seeds company defaults and issues access tokens
for local testing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "log debug output to stderr")

	root.AddCommand(newWorkdaysCmd())
	root.AddCommand(newHolidaysCmd())
	root.AddCommand(newSummaryCmd())
	root.AddCommand(newTokenCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newSeedCmd())
	return root
}

// openDatabase loads the config and connects with the configured pool.
func openDatabase(ctx context.Context) (*config.Config, *database.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns:       cfg.Database.MaxConns,
		MinConns:       1,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return cfg, db, nil
}

// openCalendar returns a calendar service backed by PostgreSQL. The caller closes db.
func openCalendar(ctx context.Context) (calendar.CalendarService, *database.DB, error) {
	_, db, err := openDatabase(ctx)
	if err != nil {
		return nil, nil, err
	}

	svc := calendarService.NewCalendarService(
		postgresql.NewTransactor(db),
		postgresql.NewHolidayRepository(db),
		postgresql.NewWeekendRepository(db),
		postgresql.NewWorkingDaysSummaryRepository(db),
	)
	return svc, db, nil
}

// openWeekendCache returns the Redis weekend cache in front of db, or nil
// when Redis is disabled. The caller closes the returned client.
func openWeekendCache(cfg *config.Config, db *database.DB) (*cache.WeekendRepository, *redis.Client) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return cache.NewWeekendRepository(postgresql.NewWeekendRepository(db), rdb, cfg.Redis.TTL), rdb
}
