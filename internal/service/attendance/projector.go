package attendance

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
)

// ProjectionInput is everything the monthly overview needs, already loaded.
type ProjectionInput struct {
	Year     int
	Month    time.Month
	Today    time.Time
	Holidays []calendar.HolidayPeriod
	Attended []time.Time
	Leaves   []leave.LeaveRequest
	Weekend  calendar.WeekendConfig
}

// Project merges holidays, approved leaves and attendance into the day
// statuses of one month. Days after today are never reported as missed.
func Project(in ProjectionInput) attendance.MonthlyOverview {
	month := calendar.MonthRange(in.Year, in.Month)
	end := month.To
	if today := calendar.Normalize(in.Today); today.Before(end) {
		end = today
	}

	holidays := make([]calendar.HolidayPeriod, 0, len(in.Holidays))
	holidayDates := make(map[time.Time]bool)
	for _, h := range in.Holidays {
		if !h.Range.Overlaps(month) {
			continue
		}
		holidays = append(holidays, h)
		for _, d := range h.Range.Days() {
			holidayDates[d] = true
		}
	}
	sort.SliceStable(holidays, func(i, j int) bool {
		return holidays[i].Range.From.Before(holidays[j].Range.From)
	})

	leaveDates := make(map[time.Time]bool)
	var approved []calendar.DateRange
	for _, l := range in.Leaves {
		if l.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		contributes := false
		for _, d := range l.Range.Days() {
			if holidayDates[d] || in.Weekend.IsWeekend(d) {
				continue
			}
			leaveDates[d] = true
			contributes = true
		}
		if contributes {
			approved = append(approved, l.Range)
		}
	}

	attended := make(map[time.Time]bool, len(in.Attended))
	for _, d := range in.Attended {
		attended[calendar.Normalize(d)] = true
	}

	var notClockedIn []time.Time
	for d := month.From; !d.After(end); d = d.AddDate(0, 0, 1) {
		if attended[d] || holidayDates[d] || leaveDates[d] || in.Weekend.IsWeekend(d) {
			continue
		}
		notClockedIn = append(notClockedIn, d)
	}

	return attendance.MonthlyOverview{
		Month:          int(in.Month),
		Year:           in.Year,
		Holidays:       holidays,
		NotClockedIn:   notClockedIn,
		LeavesApproved: approved,
	}
}
