package attendance

import (
	"context"
	"io"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/user"
)

// AttendanceService defines calendar views over attendance data
type AttendanceService interface {
	// GetMonthlyOverview merges attendance, approved leaves and holidays of
	// one month. Invalid month or year fall back to the current ones.
	GetMonthlyOverview(ctx context.Context, identity user.Identity, req MonthlyOverviewRequest) (MonthlyOverviewResponse, error)

	// RenderMonthlyOverviewPDF writes the same overview as a PDF document.
	RenderMonthlyOverviewPDF(ctx context.Context, identity user.Identity, req MonthlyOverviewRequest, w io.Writer) error

	// GetAttendanceByDate reports presence and lateness for one day
	GetAttendanceByDate(ctx context.Context, identity user.Identity, date string) (DailyAttendanceResponse, error)

	// GetWorkingDays returns the stored working-day count of a company month
	GetWorkingDays(ctx context.Context, identity user.Identity, req MonthlyOverviewRequest) (WorkingDaysResponse, error)

	// GetAttendanceSummary reports the employee's attendance for the
	// current year so far.
	GetAttendanceSummary(ctx context.Context, identity user.Identity) (SummaryResponse, error)

	GetLateClockIns(ctx context.Context, identity user.Identity, req MonthlyOverviewRequest) (LateClockInsResponse, error)

	// GetMonthlyLeaves counts approved leaves starting in the month
	GetMonthlyLeaves(ctx context.Context, identity user.Identity, req MonthlyOverviewRequest) (MonthlyLeavesResponse, error)
}
