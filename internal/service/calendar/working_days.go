package calendar

import (
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
)

// BuildWorkingDays returns the dates of r that are neither weekend nor
// mandatory holiday, ascending. Optional holidays are working days here.
func BuildWorkingDays(r calendar.DateRange, c calendar.Classifier) []time.Time {
	days := make([]time.Time, 0, r.Span())
	for _, d := range r.Days() {
		cls := c.Classify(d)
		if cls.IsWeekend || cls.Holiday == calendar.HolidayMandatory {
			continue
		}
		days = append(days, d)
	}
	return days
}
