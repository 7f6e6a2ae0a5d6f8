package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
)

// CompanyLister lists the companies whose summaries are kept up to date.
type CompanyLister interface {
	ListCompanyIDs(ctx context.Context) ([]string, error)
}

// WorkingDaysJobs keeps working_days_summary filled for the current and
// next month of every company.
type WorkingDaysJobs struct {
	companies CompanyLister
	calendar  calendar.CalendarService
	now       func() time.Time
}

func NewWorkingDaysJobs(companies CompanyLister, calendarSvc calendar.CalendarService) *WorkingDaysJobs {
	return &WorkingDaysJobs{
		companies: companies,
		calendar:  calendarSvc,
		now:       time.Now,
	}
}

func (j *WorkingDaysJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob(Job{
		Name:     "rebuild_working_days_summary",
		Interval: interval,
		Timeout:  5 * time.Minute,
		Fn:       j.RebuildSummaries,
	})
}

// RebuildSummaries recomputes the summaries. A failing company is logged and
// skipped so that the others are still refreshed.
func (j *WorkingDaysJobs) RebuildSummaries(ctx context.Context) error {
	slog.Info("Cron: Starting working days summary job")

	companyIDs, err := j.companies.ListCompanyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	current := calendar.Normalize(j.now())
	thisMonth := time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, time.UTC)
	months := []time.Time{thisMonth, thisMonth.AddDate(0, 1, 0)}

	rebuilt, failed := 0, 0
	for _, companyID := range companyIDs {
		for _, m := range months {
			if _, err := j.calendar.RebuildWorkingDaysSummary(ctx, companyID, m.Year(), m.Month()); err != nil {
				slog.Error("Cron: Failed to rebuild working days summary",
					"company_id", companyID,
					"year", m.Year(),
					"month", int(m.Month()),
					"error", err)
				failed++
				continue
			}
			rebuilt++
		}
	}

	slog.Info("Cron: Rebuilt working days summaries", "count", rebuilt, "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d working days summaries failed to rebuild", failed)
	}
	return nil
}
