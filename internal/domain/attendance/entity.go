package attendance

import (
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
)

// Record is one attendance row. The calendar engine only reads it.
type Record struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       time.Time
	ClockIn    *time.Time
	ClockOut   *time.Time
	Status     string
}

// DayRecord joins an attendance row with the company's expected clock-in
// time ("HH:MM").
type DayRecord struct {
	Record
	ExpectedClockIn *string
}

type DayStatus string

const (
	DayStatusAbsent  DayStatus = "Absent"
	DayStatusPresent DayStatus = "Present"
	DayStatusHalfDay DayStatus = "Half Day"
)

// MonthlyOverview is the day-status projection of one employee month.
type MonthlyOverview struct {
	Month          int
	Year           int
	Holidays       []calendar.HolidayPeriod
	NotClockedIn   []time.Time
	LeavesApproved []calendar.DateRange
}
