package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/database"
)

type CalendarServiceImpl struct {
	tx database.Transactor
	calendar.HolidayRepository
	calendar.WeekendRepository
	calendar.WorkingDaysSummaryRepository
	now func() time.Time
}

func NewCalendarService(
	tx database.Transactor,
	holidayRepository calendar.HolidayRepository,
	weekendRepository calendar.WeekendRepository,
	summaryRepository calendar.WorkingDaysSummaryRepository,
) *CalendarServiceImpl {
	return &CalendarServiceImpl{
		tx:                           tx,
		HolidayRepository:            holidayRepository,
		WeekendRepository:            weekendRepository,
		WorkingDaysSummaryRepository: summaryRepository,
		now:                          time.Now,
	}
}

// Classifier implements calendar.CalendarService.
func (s *CalendarServiceImpl) Classifier(ctx context.Context, companyID string, r calendar.DateRange) (calendar.Classifier, error) {
	return s.classifier(ctx, companyID, r)
}

func (s *CalendarServiceImpl) classifier(ctx context.Context, companyID string, r calendar.DateRange) (*Classifier, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	weekend, err := s.WeekendRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekend config: %w", err)
	}

	holidays, err := s.HolidayRepository.ListOverlapping(ctx, companyID, r)
	if err != nil {
		return nil, fmt.Errorf("failed to get holidays: %w", err)
	}

	return NewClassifier(weekend, holidays), nil
}

// WorkingDays implements calendar.CalendarService.
func (s *CalendarServiceImpl) WorkingDays(ctx context.Context, companyID string, r calendar.DateRange) ([]time.Time, error) {
	c, err := s.classifier(ctx, companyID, r)
	if err != nil {
		return nil, err
	}
	return BuildWorkingDays(r, c), nil
}

// Holidays implements calendar.CalendarService.
func (s *CalendarServiceImpl) Holidays(ctx context.Context, companyID string, r calendar.DateRange) ([]calendar.HolidayPeriod, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	holidays, err := s.HolidayRepository.ListOverlapping(ctx, companyID, r)
	if err != nil {
		return nil, fmt.Errorf("failed to get holidays: %w", err)
	}
	return holidays, nil
}

// WeekendConfig implements calendar.CalendarService.
func (s *CalendarServiceImpl) WeekendConfig(ctx context.Context, companyID string) (calendar.WeekendConfig, error) {
	weekend, err := s.WeekendRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		return calendar.WeekendConfig{}, fmt.Errorf("failed to get weekend config: %w", err)
	}
	return weekend, nil
}

// UpcomingHolidays implements calendar.CalendarService.
func (s *CalendarServiceImpl) UpcomingHolidays(ctx context.Context, companyID string) ([]calendar.HolidayResponse, error) {
	holidays, err := s.HolidayRepository.ListUpcoming(ctx, companyID, calendar.Normalize(s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming holidays: %w", err)
	}

	responses := make([]calendar.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, calendar.NewHolidayResponse(h))
	}
	return responses, nil
}

// PreviewWorkingDays implements calendar.CalendarService.
func (s *CalendarServiceImpl) PreviewWorkingDays(ctx context.Context, companyID string, req calendar.WorkingDaysRequest) (calendar.WorkingDaysResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.WorkingDaysResponse{}, err
	}
	r, err := req.Range()
	if err != nil {
		return calendar.WorkingDaysResponse{}, err
	}

	c, err := s.classifier(ctx, companyID, r)
	if err != nil {
		return calendar.WorkingDaysResponse{}, err
	}
	days := BuildWorkingDays(r, c)

	return calendar.WorkingDaysResponse{
		From:         calendar.FormatDate(r.From),
		To:           calendar.FormatDate(r.To),
		WorkingDays:  formatDates(days),
		Count:        len(days),
		WeekendDays:  c.weekend.Names(),
		HolidayDates: formatDates(c.HolidayDates(r)),
	}, nil
}

// GetWorkingDaysSummary implements calendar.CalendarService.
func (s *CalendarServiceImpl) GetWorkingDaysSummary(ctx context.Context, companyID string, year, month int) (calendar.WorkingDaysSummary, error) {
	summary, err := s.WorkingDaysSummaryRepository.Get(ctx, companyID, year, month)
	if err != nil {
		if errors.Is(err, calendar.ErrWorkingDaysNotFound) {
			return calendar.WorkingDaysSummary{}, err
		}
		return calendar.WorkingDaysSummary{}, fmt.Errorf("failed to get working days summary: %w", err)
	}
	return summary, nil
}

// RebuildWorkingDaysSummary implements calendar.CalendarService.
// The count uses the company weekend rule and mandatory holidays only.
func (s *CalendarServiceImpl) RebuildWorkingDaysSummary(ctx context.Context, companyID string, year int, month time.Month) (calendar.WorkingDaysSummary, error) {
	if month < time.January || month > time.December {
		return calendar.WorkingDaysSummary{}, calendar.ErrInvalidMonth
	}

	r := calendar.MonthRange(year, month)
	days, err := s.WorkingDays(ctx, companyID, r)
	if err != nil {
		return calendar.WorkingDaysSummary{}, err
	}

	summary := calendar.WorkingDaysSummary{
		CompanyID:        companyID,
		Year:             year,
		Month:            int(month),
		TotalWorkingDays: len(days),
	}
	if err := s.WorkingDaysSummaryRepository.Upsert(ctx, summary); err != nil {
		return calendar.WorkingDaysSummary{}, fmt.Errorf("failed to store working days summary: %w", err)
	}

	slog.Debug("Working days summary rebuilt",
		"company_id", companyID,
		"year", year,
		"month", int(month),
		"total_working_days", summary.TotalWorkingDays,
	)
	return summary, nil
}

// ImportHolidays implements calendar.CalendarService. Holidays are imported
// all or nothing.
func (s *CalendarServiceImpl) ImportHolidays(ctx context.Context, holidays []calendar.HolidayPeriod) (int, error) {
	for _, h := range holidays {
		if h.Name == "" {
			return 0, calendar.ErrHolidayNameRequired
		}
		if err := h.Range.Validate(); err != nil {
			return 0, fmt.Errorf("holiday %q: %w", h.Name, err)
		}
	}

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		for _, h := range holidays {
			if _, err := s.HolidayRepository.Create(txCtx, h); err != nil {
				return fmt.Errorf("failed to create holiday %q: %w", h.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(holidays), nil
}

func formatDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, calendar.FormatDate(d))
	}
	return out
}
