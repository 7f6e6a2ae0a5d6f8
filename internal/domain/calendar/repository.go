package calendar

import (
	"context"
	"time"
)

// HolidayRepository - interface for holidays table
type HolidayRepository interface {
	// ListOverlapping returns company-specific and global holidays intersecting r,
	// ordered by start date.
	ListOverlapping(ctx context.Context, companyID string, r DateRange) ([]HolidayPeriod, error)
	ListUpcoming(ctx context.Context, companyID string, from time.Time) ([]HolidayPeriod, error)
	Create(ctx context.Context, holiday HolidayPeriod) (HolidayPeriod, error)
}

// WeekendRepository - interface for weekends table
type WeekendRepository interface {
	// GetByCompanyID returns an empty config when the company has none.
	GetByCompanyID(ctx context.Context, companyID string) (WeekendConfig, error)
	ListCompanyIDs(ctx context.Context) ([]string, error)
}

// WorkingDaysSummaryRepository - interface for working_days_summary table
type WorkingDaysSummaryRepository interface {
	Get(ctx context.Context, companyID string, year, month int) (WorkingDaysSummary, error)
	Upsert(ctx context.Context, summary WorkingDaysSummary) error
}
