package calendar

import (
	"context"
	"time"
)

// Classification is the calendar status of one date for one company.
type Classification struct {
	IsWeekend bool
	Holiday   HolidayKind
}

// Classifier answers Classify for the dates of one company.
type Classifier interface {
	Classify(date time.Time) Classification
	OptionalHolidayDates(r DateRange) []time.Time
	IsWeekend(date time.Time) bool
}

type CalendarService interface {
	Classifier(ctx context.Context, companyID string, r DateRange) (Classifier, error)
	WorkingDays(ctx context.Context, companyID string, r DateRange) ([]time.Time, error)
	Holidays(ctx context.Context, companyID string, r DateRange) ([]HolidayPeriod, error)
	WeekendConfig(ctx context.Context, companyID string) (WeekendConfig, error)
	UpcomingHolidays(ctx context.Context, companyID string) ([]HolidayResponse, error)
	PreviewWorkingDays(ctx context.Context, companyID string, req WorkingDaysRequest) (WorkingDaysResponse, error)
	GetWorkingDaysSummary(ctx context.Context, companyID string, year, month int) (WorkingDaysSummary, error)
	RebuildWorkingDaysSummary(ctx context.Context, companyID string, year int, month time.Month) (WorkingDaysSummary, error)
	ImportHolidays(ctx context.Context, holidays []HolidayPeriod) (int, error)
}
