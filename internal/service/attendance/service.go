package attendance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/user"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/report"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	leaves   attendance.LeaveReader
	quotas   attendance.QuotaReader
	calendar calendar.CalendarService

	// fixedWeekend restores the Saturday/Sunday rule for the monthly overview
	// instead of the company weekend config.
	fixedWeekend bool
	now          func() time.Time
}

func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	leaveReader attendance.LeaveReader,
	quotaReader attendance.QuotaReader,
	calendarSvc calendar.CalendarService,
	fixedWeekend bool,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		leaves:               leaveReader,
		quotas:               quotaReader,
		calendar:             calendarSvc,
		fixedWeekend:         fixedWeekend,
		now:                  time.Now,
	}
}

// GetMonthlyOverview implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMonthlyOverview(ctx context.Context, identity user.Identity, req attendance.MonthlyOverviewRequest) (attendance.MonthlyOverviewResponse, error) {
	overview, err := a.monthlyOverview(ctx, identity, req)
	if err != nil {
		return attendance.MonthlyOverviewResponse{}, err
	}
	return attendance.NewMonthlyOverviewResponse(overview), nil
}

// RenderMonthlyOverviewPDF implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RenderMonthlyOverviewPDF(ctx context.Context, identity user.Identity, req attendance.MonthlyOverviewRequest, w io.Writer) error {
	overview, err := a.monthlyOverview(ctx, identity, req)
	if err != nil {
		return err
	}
	resp := attendance.NewMonthlyOverviewResponse(overview)

	doc := report.MonthlyOverview{
		EmployeeID:   identity.EmployeeID,
		Year:         resp.Year,
		Month:        time.Month(resp.Month),
		NotClockedIn: resp.NotClockedIn,
		GeneratedAt:  a.now(),
	}
	for _, h := range resp.Holidays {
		doc.Holidays = append(doc.Holidays, report.HolidayRow{Name: h.Name, From: h.FromDate, To: h.ToDate})
	}
	for _, l := range resp.LeavesApproved {
		doc.Leaves = append(doc.Leaves, report.LeaveRow{From: l.FromDate, To: l.ToDate})
	}

	if err := report.WriteMonthlyOverview(w, doc); err != nil {
		return a.logFailure(ctx, identity, "render_monthly_overview", err)
	}
	return nil
}

func (a *AttendanceServiceImpl) monthlyOverview(ctx context.Context, identity user.Identity, req attendance.MonthlyOverviewRequest) (attendance.MonthlyOverview, error) {
	if err := identity.Validate(); err != nil {
		return attendance.MonthlyOverview{}, err
	}

	today := a.now()
	year, month := req.Resolve(today)
	r := calendar.MonthRange(year, month)

	holidays, err := a.calendar.Holidays(ctx, identity.CompanyID, r)
	if err != nil {
		return attendance.MonthlyOverview{}, a.logFailure(ctx, identity, "monthly_overview", err)
	}

	weekend := calendar.FixedWeekend
	if !a.fixedWeekend {
		weekend, err = a.calendar.WeekendConfig(ctx, identity.CompanyID)
		if err != nil {
			return attendance.MonthlyOverview{}, a.logFailure(ctx, identity, "monthly_overview", err)
		}
	}

	attended, err := a.AttendanceRepository.ListDates(ctx, identity.EmployeeID, identity.CompanyID, r)
	if err != nil {
		return attendance.MonthlyOverview{}, a.logFailure(ctx, identity, "monthly_overview", fmt.Errorf("failed to list attendance: %w", err))
	}

	leaves, err := a.leaves.ListOverlapping(ctx, identity.EmployeeID, identity.CompanyID, r)
	if err != nil {
		return attendance.MonthlyOverview{}, a.logFailure(ctx, identity, "monthly_overview", fmt.Errorf("failed to list leave requests: %w", err))
	}

	return Project(ProjectionInput{
		Year:     year,
		Month:    month,
		Today:    today,
		Holidays: holidays,
		Attended: attended,
		Leaves:   leaves,
		Weekend:  weekend,
	}), nil
}

// GetAttendanceByDate implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendanceByDate(ctx context.Context, identity user.Identity, date string) (attendance.DailyAttendanceResponse, error) {
	if err := identity.Validate(); err != nil {
		return attendance.DailyAttendanceResponse{}, err
	}

	day, err := calendar.ParseDate(date)
	if err != nil {
		return attendance.DailyAttendanceResponse{}, attendance.ErrInvalidDate
	}

	record, err := a.AttendanceRepository.GetByDate(ctx, identity.EmployeeID, identity.CompanyID, day)
	if err != nil {
		return attendance.DailyAttendanceResponse{}, a.logFailure(ctx, identity, "attendance_by_date", fmt.Errorf("failed to get attendance: %w", err))
	}

	resp := attendance.DailyAttendanceResponse{
		Date:   calendar.FormatDate(day),
		Status: attendance.DayStatusAbsent,
	}
	if record == nil {
		return resp, nil
	}

	resp.Status = attendance.DayStatusHalfDay
	if record.ClockIn != nil && record.ClockOut != nil {
		resp.Status = attendance.DayStatusPresent
		resp.WorkingHours = int(math.Round(record.ClockOut.Sub(*record.ClockIn).Hours()))
	}
	if record.ClockIn != nil {
		clockIn := record.ClockIn.Format("03:04 PM")
		resp.ClockIn = &clockIn
		resp.IsLate = isLate(*record.ClockIn, record.ExpectedClockIn)
	}
	if record.ClockOut != nil {
		clockOut := record.ClockOut.Format("03:04 PM")
		resp.ClockOut = &clockOut
	}
	return resp, nil
}

// isLate compares the clock-in "HH:MM" with the expected "HH:MM[:SS]".
func isLate(clockIn time.Time, expected *string) bool {
	if expected == nil || *expected == "" {
		return false
	}
	exp := strings.TrimSpace(*expected)
	if len(exp) > 5 {
		exp = exp[:5]
	}
	return clockIn.Format("15:04") > exp
}

// GetWorkingDays implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetWorkingDays(ctx context.Context, identity user.Identity, req attendance.MonthlyOverviewRequest) (attendance.WorkingDaysResponse, error) {
	if identity.CompanyID == "" {
		return attendance.WorkingDaysResponse{}, user.ErrCompanyIDRequired
	}

	year, month := req.Resolve(a.now())
	summary, err := a.calendar.GetWorkingDaysSummary(ctx, identity.CompanyID, year, int(month))
	if err != nil {
		if errors.Is(err, calendar.ErrWorkingDaysNotFound) {
			return attendance.WorkingDaysResponse{}, err
		}
		return attendance.WorkingDaysResponse{}, a.logFailure(ctx, identity, "working_days", err)
	}

	return attendance.WorkingDaysResponse{
		Month:            summary.Month,
		Year:             summary.Year,
		TotalWorkingDays: summary.TotalWorkingDays,
	}, nil
}

// GetAttendanceSummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendanceSummary(ctx context.Context, identity user.Identity) (attendance.SummaryResponse, error) {
	if err := identity.Validate(); err != nil {
		return attendance.SummaryResponse{}, err
	}

	today := calendar.Normalize(a.now())
	year := today.Year()

	annual, err := a.AttendanceRepository.SumWorkingDays(ctx, identity.CompanyID, year, time.December)
	if err != nil {
		return attendance.SummaryResponse{}, a.logFailure(ctx, identity, "attendance_summary", fmt.Errorf("failed to sum working days: %w", err))
	}
	toDate, err := a.AttendanceRepository.SumWorkingDays(ctx, identity.CompanyID, year, today.Month())
	if err != nil {
		return attendance.SummaryResponse{}, a.logFailure(ctx, identity, "attendance_summary", fmt.Errorf("failed to sum working days: %w", err))
	}
	if annual == 0 || toDate == 0 {
		return attendance.SummaryResponse{}, calendar.ErrWorkingDaysNotFound
	}

	quota, err := a.quotas.GetByEmployee(ctx, identity.EmployeeID, identity.CompanyID)
	if err != nil {
		if errors.Is(err, leave.ErrQuotaNotFound) {
			return attendance.SummaryResponse{}, err
		}
		return attendance.SummaryResponse{}, a.logFailure(ctx, identity, "attendance_summary", fmt.Errorf("failed to get leave quota: %w", err))
	}

	yearToDate := calendar.DateRange{From: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), To: today}
	attended, err := a.AttendanceRepository.ListDates(ctx, identity.EmployeeID, identity.CompanyID, yearToDate)
	if err != nil {
		return attendance.SummaryResponse{}, a.logFailure(ctx, identity, "attendance_summary", fmt.Errorf("failed to list attendance: %w", err))
	}
	late, err := a.AttendanceRepository.CountLateClockIns(ctx, identity.EmployeeID, identity.CompanyID, yearToDate)
	if err != nil {
		return attendance.SummaryResponse{}, a.logFailure(ctx, identity, "attendance_summary", fmt.Errorf("failed to count late clock-ins: %w", err))
	}

	present := len(attended)
	return attendance.SummaryResponse{
		Year:                 year,
		AttendancePercentage: min(int(math.Round(float64(present)*100/float64(toDate))), 100),
		PresentCount:         present,
		AbsentCount:          max(toDate-present, 0),
		WorkingDays:          annual,
		WorkingDaysToDate:    toDate,
		LeaveTaken:           quota.StandardTaken + quota.OptionalTaken,
		LateClockIns:         late,
	}, nil
}

// GetLateClockIns implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetLateClockIns(ctx context.Context, identity user.Identity, req attendance.MonthlyOverviewRequest) (attendance.LateClockInsResponse, error) {
	if err := identity.Validate(); err != nil {
		return attendance.LateClockInsResponse{}, err
	}

	year, month := req.Resolve(a.now())
	count, err := a.AttendanceRepository.CountLateClockIns(ctx, identity.EmployeeID, identity.CompanyID, calendar.MonthRange(year, month))
	if err != nil {
		return attendance.LateClockInsResponse{}, a.logFailure(ctx, identity, "late_clock_ins", fmt.Errorf("failed to count late clock-ins: %w", err))
	}

	return attendance.LateClockInsResponse{Month: int(month), Year: year, LateClockIns: count}, nil
}

// GetMonthlyLeaves implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMonthlyLeaves(ctx context.Context, identity user.Identity, req attendance.MonthlyOverviewRequest) (attendance.MonthlyLeavesResponse, error) {
	if err := identity.Validate(); err != nil {
		return attendance.MonthlyLeavesResponse{}, err
	}

	year, month := req.Resolve(a.now())
	count, err := a.AttendanceRepository.CountApprovedLeaves(ctx, identity.EmployeeID, identity.CompanyID, calendar.MonthRange(year, month))
	if err != nil {
		return attendance.MonthlyLeavesResponse{}, a.logFailure(ctx, identity, "monthly_leaves", fmt.Errorf("failed to count approved leaves: %w", err))
	}

	return attendance.MonthlyLeavesResponse{Month: int(month), Year: year, LeavesTaken: count}, nil
}

func (a *AttendanceServiceImpl) logFailure(ctx context.Context, identity user.Identity, operation string, err error) error {
	slog.ErrorContext(ctx, "Attendance operation failed",
		"employee_id", identity.EmployeeID,
		"company_id", identity.CompanyID,
		"operation", operation,
		"error", err,
	)
	return err
}
