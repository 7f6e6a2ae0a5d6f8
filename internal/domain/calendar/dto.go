package calendar

import (
	"fmt"

	"github.com/cmlabs-hris/leave-calendar/internal/pkg/validator"
)

type WorkingDaysRequest struct {
	From string `json:"from" validate:"required,datetime=2006-01-02"`
	To   string `json:"to" validate:"required,datetime=2006-01-02"`
}

func (r *WorkingDaysRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if ExceedsMaxSpan(r.From, r.To) {
		return validator.ValidationErrors{{
			Field:   "to",
			Message: fmt.Sprintf("range must not exceed %d days", MaxRangeDays),
		}}
	}
	return nil
}

// Range parses the request dates. Call Validate first.
func (r *WorkingDaysRequest) Range() (DateRange, error) {
	from, err := ParseDate(r.From)
	if err != nil {
		return DateRange{}, err
	}
	to, err := ParseDate(r.To)
	if err != nil {
		return DateRange{}, err
	}
	return NewDateRange(from, to)
}

type WorkingDaysResponse struct {
	From         string   `json:"from"`
	To           string   `json:"to"`
	WorkingDays  []string `json:"working_days"`
	Count        int      `json:"count"`
	WeekendDays  []string `json:"weekend_days"`
	HolidayDates []string `json:"holiday_dates"`
}

type HolidayResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	Kind     string `json:"leave_type"`
	Global   bool   `json:"global"`
}

func NewHolidayResponse(h HolidayPeriod) HolidayResponse {
	return HolidayResponse{
		ID:       h.ID,
		Name:     h.Name,
		FromDate: FormatDate(h.Range.From),
		ToDate:   FormatDate(h.Range.To),
		Kind:     h.Kind.String(),
		Global:   h.CompanyID == nil,
	}
}

type WorkingDaysSummaryResponse struct {
	Month            int `json:"month"`
	Year             int `json:"year"`
	TotalWorkingDays int `json:"total_working_days"`
}
