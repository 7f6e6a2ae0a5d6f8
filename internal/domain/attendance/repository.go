package attendance

import (
	"context"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
)

// AttendanceRepository defines read access to attendance records.
// All methods include companyID to keep reads inside one company.
type AttendanceRepository interface {
	// ListDates returns the distinct dates within r on which the employee
	// has an attendance row.
	ListDates(ctx context.Context, employeeID, companyID string, r calendar.DateRange) ([]time.Time, error)

	// GetByDate returns the row for one date, or nil when the employee did
	// not clock in.
	GetByDate(ctx context.Context, employeeID, companyID string, date time.Time) (*DayRecord, error)

	// CountLateClockIns counts the days within r on which the employee
	// clocked in after the company's expected clock-in time.
	CountLateClockIns(ctx context.Context, employeeID, companyID string, r calendar.DateRange) (int, error)

	// CountApprovedLeaves counts approved leave requests starting within r.
	CountApprovedLeaves(ctx context.Context, employeeID, companyID string, r calendar.DateRange) (int, error)

	// SumWorkingDays totals the stored working days of one company year up
	// to and including through.
	SumWorkingDays(ctx context.Context, companyID string, year int, through time.Month) (int, error)
}

// QuotaReader exposes the leave quota the summary reports. It is satisfied
// by leave.LeaveQuotaRepository.
type QuotaReader interface {
	GetByEmployee(ctx context.Context, employeeID, companyID string) (leave.LeaveQuota, error)
}

// LeaveReader exposes the leave requests the overview merges in. It is
// satisfied by leave.LeaveRequestRepository.
type LeaveReader interface {
	ListOverlapping(ctx context.Context, employeeID, companyID string, r calendar.DateRange) ([]leave.LeaveRequest, error)
}
