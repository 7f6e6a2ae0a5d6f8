package attendance

import (
	"strconv"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
)

// MonthlyOverviewRequest carries the raw month/year query values.
type MonthlyOverviewRequest struct {
	Month string
	Year  string
}

// Resolve returns the requested month, falling back to today's month or
// year when a value is missing or out of range.
func (r MonthlyOverviewRequest) Resolve(today time.Time) (int, time.Month) {
	year := today.Year()
	month := today.Month()

	if m, err := strconv.Atoi(r.Month); err == nil && m >= 1 && m <= 12 {
		month = time.Month(m)
	}
	if y, err := strconv.Atoi(r.Year); err == nil && y >= 1900 && y <= 3000 {
		year = y
	}
	return year, month
}

type HolidayEntry struct {
	Name     string `json:"name"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
}

type LeaveEntry struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
}

type MonthlyOverviewResponse struct {
	Month          int            `json:"month"`
	Year           int            `json:"year"`
	Holidays       []HolidayEntry `json:"holidays"`
	NotClockedIn   []string       `json:"not_clocked_in"`
	LeavesApproved []LeaveEntry   `json:"leaves_approved"`
}

func NewMonthlyOverviewResponse(o MonthlyOverview) MonthlyOverviewResponse {
	resp := MonthlyOverviewResponse{
		Month:          o.Month,
		Year:           o.Year,
		Holidays:       make([]HolidayEntry, 0, len(o.Holidays)),
		NotClockedIn:   make([]string, 0, len(o.NotClockedIn)),
		LeavesApproved: make([]LeaveEntry, 0, len(o.LeavesApproved)),
	}
	for _, h := range o.Holidays {
		resp.Holidays = append(resp.Holidays, HolidayEntry{
			Name:     h.Name,
			FromDate: calendar.FormatDate(h.Range.From),
			ToDate:   calendar.FormatDate(h.Range.To),
		})
	}
	for _, d := range o.NotClockedIn {
		resp.NotClockedIn = append(resp.NotClockedIn, calendar.FormatDate(d))
	}
	for _, l := range o.LeavesApproved {
		resp.LeavesApproved = append(resp.LeavesApproved, LeaveEntry{
			FromDate: calendar.FormatDate(l.From),
			ToDate:   calendar.FormatDate(l.To),
		})
	}
	return resp
}

type DailyAttendanceResponse struct {
	Date         string    `json:"date"`
	Status       DayStatus `json:"status"`
	ClockIn      *string   `json:"clock_in"`
	ClockOut     *string   `json:"clock_out"`
	IsLate       bool      `json:"is_late"`
	WorkingHours int       `json:"working_hours"`
}

type WorkingDaysResponse struct {
	Month            int `json:"month"`
	Year             int `json:"year"`
	TotalWorkingDays int `json:"total_working_days"`
}

type SummaryResponse struct {
	Year                 int `json:"year"`
	AttendancePercentage int `json:"attendance_percentage"`
	PresentCount         int `json:"present_count"`
	AbsentCount          int `json:"absent_count"`
	WorkingDays          int `json:"working_days"`
	WorkingDaysToDate    int `json:"working_days_to_date"`
	LeaveTaken           int `json:"leave_taken"`
	LateClockIns         int `json:"late_clock_ins"`
}

type LateClockInsResponse struct {
	Month        int `json:"month"`
	Year         int `json:"year"`
	LateClockIns int `json:"late_clock_ins"`
}

type MonthlyLeavesResponse struct {
	Month       int `json:"month"`
	Year        int `json:"year"`
	LeavesTaken int `json:"leaves_taken"`
}
