package calendar

import (
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
)

// Classifier holds the weekend rule and holiday dates of one company.
// It is immutable once built and safe for concurrent use.
type Classifier struct {
	weekend  calendar.WeekendConfig
	holidays map[time.Time]calendar.HolidayKind
}

// NewClassifier expands the holiday periods into per-date kinds. When a
// mandatory and an optional period cover the same date, mandatory wins.
func NewClassifier(weekend calendar.WeekendConfig, holidays []calendar.HolidayPeriod) *Classifier {
	c := &Classifier{
		weekend:  weekend,
		holidays: make(map[time.Time]calendar.HolidayKind),
	}
	for _, h := range holidays {
		for _, d := range h.Range.Days() {
			if c.holidays[d] == calendar.HolidayMandatory {
				continue
			}
			c.holidays[d] = h.Kind
		}
	}
	return c
}

func (c *Classifier) Classify(date time.Time) calendar.Classification {
	d := calendar.Normalize(date)
	return calendar.Classification{
		IsWeekend: c.weekend.IsWeekend(d),
		Holiday:   c.holidays[d],
	}
}

func (c *Classifier) IsWeekend(date time.Time) bool {
	return c.weekend.IsWeekend(calendar.Normalize(date))
}

// OptionalHolidayDates lists the optional-holiday dates within r, ascending.
func (c *Classifier) OptionalHolidayDates(r calendar.DateRange) []time.Time {
	var dates []time.Time
	for _, d := range r.Days() {
		if c.holidays[d] == calendar.HolidayOptional {
			dates = append(dates, d)
		}
	}
	return dates
}

// HolidayDates lists every holiday date within r regardless of kind.
func (c *Classifier) HolidayDates(r calendar.DateRange) []time.Time {
	var dates []time.Time
	for _, d := range r.Days() {
		if c.holidays[d] != calendar.HolidayNone {
			dates = append(dates, d)
		}
	}
	return dates
}
