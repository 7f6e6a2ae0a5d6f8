package attendance

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCompanyID  = "0192f0a4-7b1c-7d2e-8f30-00000000c001"
	testEmployeeID = "0192f0a4-7b1c-7d2e-8f30-00000000e001"
)

var employee = user.Identity{UserID: "u-1", EmployeeID: testEmployeeID, CompanyID: testCompanyID, Role: user.RoleEmployee}

func date(s string) time.Time {
	d, err := calendar.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fakeAttendanceRepository struct {
	dates  []time.Time
	record *attendance.DayRecord
	err    error

	// late clock-in days and approved leave start dates
	late        []time.Time
	leaveStarts []time.Time
	// working days per month of 2024
	workingDays map[time.Month]int

	lastRange calendar.DateRange
}

func (f *fakeAttendanceRepository) ListDates(ctx context.Context, employeeID, companyID string, r calendar.DateRange) ([]time.Time, error) {
	var out []time.Time
	for _, d := range f.dates {
		if r.Contains(d) {
			out = append(out, d)
		}
	}
	return out, f.err
}

func countWithin(dates []time.Time, r calendar.DateRange) int {
	n := 0
	for _, d := range dates {
		if r.Contains(d) {
			n++
		}
	}
	return n
}

func (f *fakeAttendanceRepository) CountLateClockIns(ctx context.Context, employeeID, companyID string, r calendar.DateRange) (int, error) {
	f.lastRange = r
	return countWithin(f.late, r), f.err
}

func (f *fakeAttendanceRepository) CountApprovedLeaves(ctx context.Context, employeeID, companyID string, r calendar.DateRange) (int, error) {
	f.lastRange = r
	return countWithin(f.leaveStarts, r), f.err
}

func (f *fakeAttendanceRepository) SumWorkingDays(ctx context.Context, companyID string, year int, through time.Month) (int, error) {
	if year != 2024 {
		return 0, f.err
	}
	total := 0
	for m, n := range f.workingDays {
		if m <= through {
			total += n
		}
	}
	return total, f.err
}

type fakeQuotaReader struct {
	quota *leave.LeaveQuota
}

func (f *fakeQuotaReader) GetByEmployee(ctx context.Context, employeeID, companyID string) (leave.LeaveQuota, error) {
	if f.quota == nil {
		return leave.LeaveQuota{}, leave.ErrQuotaNotFound
	}
	return *f.quota, nil
}

func (f *fakeAttendanceRepository) GetByDate(ctx context.Context, employeeID, companyID string, d time.Time) (*attendance.DayRecord, error) {
	return f.record, f.err
}

type fakeLeaveReader struct {
	requests []leave.LeaveRequest
}

func (f *fakeLeaveReader) ListOverlapping(ctx context.Context, employeeID, companyID string, r calendar.DateRange) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range f.requests {
		if req.Range.Overlaps(r) {
			out = append(out, req)
		}
	}
	return out, nil
}

type fakeCalendar struct {
	calendar.CalendarService
	weekend  calendar.WeekendConfig
	holidays []calendar.HolidayPeriod
	summary  *calendar.WorkingDaysSummary
}

func (f *fakeCalendar) Holidays(ctx context.Context, companyID string, r calendar.DateRange) ([]calendar.HolidayPeriod, error) {
	var out []calendar.HolidayPeriod
	for _, h := range f.holidays {
		if h.Range.Overlaps(r) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeCalendar) WeekendConfig(ctx context.Context, companyID string) (calendar.WeekendConfig, error) {
	return f.weekend, nil
}

func (f *fakeCalendar) GetWorkingDaysSummary(ctx context.Context, companyID string, year, month int) (calendar.WorkingDaysSummary, error) {
	if f.summary == nil || f.summary.Year != year || f.summary.Month != month {
		return calendar.WorkingDaysSummary{}, calendar.ErrWorkingDaysNotFound
	}
	return *f.summary, nil
}

func approvedLeave(from, to string) leave.LeaveRequest {
	return leave.LeaveRequest{
		EmployeeID: testEmployeeID,
		CompanyID:  testCompanyID,
		Category:   leave.StandardCategory("Annual"),
		Range:      calendar.DateRange{From: date(from), To: date(to)},
		Status:     leave.LeaveRequestStatusApproved,
	}
}

func newTestAttendanceService(repo *fakeAttendanceRepository, leaves *fakeLeaveReader, cal *fakeCalendar, fixedWeekend bool) *AttendanceServiceImpl {
	svc := NewAttendanceService(repo, leaves, &fakeQuotaReader{quota: &leave.LeaveQuota{StandardTaken: 3, OptionalTaken: 1}}, cal, fixedWeekend)
	svc.now = func() time.Time { return time.Date(2024, 8, 20, 10, 30, 0, 0, time.UTC) }
	return svc
}

// Test leave and holiday dates are not reported as missed clock-ins
func TestAttendanceService_GetMonthlyOverview(t *testing.T) {
	ctx := context.Background()
	svc := newTestAttendanceService(
		&fakeAttendanceRepository{dates: []time.Time{date("2024-08-05")}},
		&fakeLeaveReader{requests: []leave.LeaveRequest{approvedLeave("2024-08-14", "2024-08-14")}},
		&fakeCalendar{
			weekend: calendar.FixedWeekend,
			holidays: []calendar.HolidayPeriod{{
				Name:  "Independence Day",
				Range: calendar.DateRange{From: date("2024-08-15"), To: date("2024-08-15")},
				Kind:  calendar.HolidayMandatory,
			}},
		},
		false,
	)

	resp, err := svc.GetMonthlyOverview(ctx, employee, attendance.MonthlyOverviewRequest{Month: "8", Year: "2024"})

	require.NoError(t, err)
	assert.Equal(t, 8, resp.Month)
	assert.Equal(t, 2024, resp.Year)
	assert.Equal(t, []string{
		"2024-08-01", "2024-08-02", "2024-08-06", "2024-08-07", "2024-08-08", "2024-08-09",
		"2024-08-12", "2024-08-13", "2024-08-16", "2024-08-19", "2024-08-20",
	}, resp.NotClockedIn)
	assert.Equal(t, []attendance.LeaveEntry{{FromDate: "2024-08-14", ToDate: "2024-08-14"}}, resp.LeavesApproved)
	require.Len(t, resp.Holidays, 1)
	assert.Equal(t, "Independence Day", resp.Holidays[0].Name)
}

// Test out-of-range month and year fall back to the current ones
func TestAttendanceService_GetMonthlyOverview_FallsBackToCurrentMonth(t *testing.T) {
	ctx := context.Background()
	svc := newTestAttendanceService(&fakeAttendanceRepository{}, &fakeLeaveReader{}, &fakeCalendar{weekend: calendar.FixedWeekend}, false)

	resp, err := svc.GetMonthlyOverview(ctx, employee, attendance.MonthlyOverviewRequest{Month: "13", Year: "abc"})

	require.NoError(t, err)
	assert.Equal(t, 8, resp.Month)
	assert.Equal(t, 2024, resp.Year)
	assert.Len(t, resp.NotClockedIn, 14)
}

func TestAttendanceService_GetMonthlyOverview_CompanyWeekend(t *testing.T) {
	ctx := context.Background()
	fridaySaturday := calendar.WeekendConfig{Days: []time.Weekday{time.Friday, time.Saturday}}

	companyRule := newTestAttendanceService(&fakeAttendanceRepository{}, &fakeLeaveReader{}, &fakeCalendar{weekend: fridaySaturday}, false)
	resp, err := companyRule.GetMonthlyOverview(ctx, employee, attendance.MonthlyOverviewRequest{Month: "8", Year: "2024"})
	require.NoError(t, err)
	assert.Contains(t, resp.NotClockedIn, "2024-08-04")
	assert.NotContains(t, resp.NotClockedIn, "2024-08-02")

	fixedRule := newTestAttendanceService(&fakeAttendanceRepository{}, &fakeLeaveReader{}, &fakeCalendar{weekend: fridaySaturday}, true)
	resp, err = fixedRule.GetMonthlyOverview(ctx, employee, attendance.MonthlyOverviewRequest{Month: "8", Year: "2024"})
	require.NoError(t, err)
	assert.NotContains(t, resp.NotClockedIn, "2024-08-04")
	assert.Contains(t, resp.NotClockedIn, "2024-08-02")
}

func TestAttendanceService_GetMonthlyOverview_RepositoryError(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("connection refused")
	svc := newTestAttendanceService(&fakeAttendanceRepository{err: dbErr}, &fakeLeaveReader{}, &fakeCalendar{weekend: calendar.FixedWeekend}, false)

	_, err := svc.GetMonthlyOverview(ctx, employee, attendance.MonthlyOverviewRequest{Month: "8", Year: "2024"})

	assert.ErrorIs(t, err, dbErr)
}

func TestAttendanceService_RenderMonthlyOverviewPDF(t *testing.T) {
	ctx := context.Background()
	svc := newTestAttendanceService(
		&fakeAttendanceRepository{},
		&fakeLeaveReader{requests: []leave.LeaveRequest{approvedLeave("2024-08-14", "2024-08-14")}},
		&fakeCalendar{weekend: calendar.FixedWeekend},
		false,
	)

	var buf bytes.Buffer
	err := svc.RenderMonthlyOverviewPDF(ctx, employee, attendance.MonthlyOverviewRequest{Month: "8", Year: "2024"}, &buf)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestAttendanceService_GetAttendanceByDate(t *testing.T) {
	clockIn := time.Date(2024, 8, 12, 9, 15, 0, 0, time.UTC)
	clockOut := time.Date(2024, 8, 12, 17, 45, 0, 0, time.UTC)
	expected := "09:00:00"

	tests := []struct {
		name        string
		record      *attendance.DayRecord
		wantStatus  attendance.DayStatus
		wantLate    bool
		wantHours   int
		wantClockIn *string
	}{
		{
			name:       "no row",
			record:     nil,
			wantStatus: attendance.DayStatusAbsent,
		},
		{
			name: "clocked in and out late",
			record: &attendance.DayRecord{
				Record:          attendance.Record{ClockIn: &clockIn, ClockOut: &clockOut},
				ExpectedClockIn: &expected,
			},
			wantStatus: attendance.DayStatusPresent,
			wantLate:   true,
			wantHours:  9,
		},
		{
			name: "only clocked in",
			record: &attendance.DayRecord{
				Record:          attendance.Record{ClockIn: &clockIn},
				ExpectedClockIn: &expected,
			},
			wantStatus: attendance.DayStatusHalfDay,
			wantLate:   true,
		},
		{
			name: "no expected clock-in",
			record: &attendance.DayRecord{
				Record: attendance.Record{ClockIn: &clockIn, ClockOut: &clockOut},
			},
			wantStatus: attendance.DayStatusPresent,
			wantHours:  9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc := newTestAttendanceService(&fakeAttendanceRepository{record: tt.record}, &fakeLeaveReader{}, &fakeCalendar{}, false)

			resp, err := svc.GetAttendanceByDate(ctx, employee, "2024-08-12")

			require.NoError(t, err)
			assert.Equal(t, "2024-08-12", resp.Date)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.wantLate, resp.IsLate)
			assert.Equal(t, tt.wantHours, resp.WorkingHours)
			if tt.record == nil {
				assert.Nil(t, resp.ClockIn)
			} else {
				require.NotNil(t, resp.ClockIn)
				assert.Equal(t, "09:15 AM", *resp.ClockIn)
			}
		})
	}
}

func TestAttendanceService_GetAttendanceByDate_OnTime(t *testing.T) {
	ctx := context.Background()
	clockIn := time.Date(2024, 8, 12, 8, 59, 0, 0, time.UTC)
	expected := "09:00"
	svc := newTestAttendanceService(&fakeAttendanceRepository{record: &attendance.DayRecord{
		Record:          attendance.Record{ClockIn: &clockIn},
		ExpectedClockIn: &expected,
	}}, &fakeLeaveReader{}, &fakeCalendar{}, false)

	resp, err := svc.GetAttendanceByDate(ctx, employee, "2024-08-12")

	require.NoError(t, err)
	assert.False(t, resp.IsLate)
}

func TestAttendanceService_GetAttendanceByDate_InvalidDate(t *testing.T) {
	ctx := context.Background()
	svc := newTestAttendanceService(&fakeAttendanceRepository{}, &fakeLeaveReader{}, &fakeCalendar{}, false)

	_, err := svc.GetAttendanceByDate(ctx, employee, "12/08/2024")

	assert.ErrorIs(t, err, attendance.ErrInvalidDate)
}

func TestAttendanceService_GetWorkingDays(t *testing.T) {
	ctx := context.Background()
	svc := newTestAttendanceService(&fakeAttendanceRepository{}, &fakeLeaveReader{}, &fakeCalendar{
		summary: &calendar.WorkingDaysSummary{CompanyID: testCompanyID, Year: 2024, Month: 8, TotalWorkingDays: 21},
	}, false)

	resp, err := svc.GetWorkingDays(ctx, employee, attendance.MonthlyOverviewRequest{})
	require.NoError(t, err)
	assert.Equal(t, 21, resp.TotalWorkingDays)

	_, err = svc.GetWorkingDays(ctx, employee, attendance.MonthlyOverviewRequest{Month: "9", Year: "2024"})
	assert.ErrorIs(t, err, calendar.ErrWorkingDaysNotFound)
}

// Test the summary counts attendance from January 1 through today
func TestAttendanceService_GetAttendanceSummary(t *testing.T) {
	ctx := context.Background()
	repo := &fakeAttendanceRepository{
		dates: []time.Time{date("2023-12-29"), date("2024-01-02"), date("2024-03-04"), date("2024-08-19"), date("2024-08-21")},
		late:  []time.Time{date("2024-03-04"), date("2024-08-19")},
		workingDays: map[time.Month]int{
			time.January: 2, time.February: 0, time.March: 1,
			time.August: 1, time.September: 20, time.December: 19,
		},
	}
	svc := newTestAttendanceService(repo, &fakeLeaveReader{}, &fakeCalendar{}, false)

	resp, err := svc.GetAttendanceSummary(ctx, employee)

	require.NoError(t, err)
	assert.Equal(t, attendance.SummaryResponse{
		Year:                 2024,
		AttendancePercentage: 75,
		PresentCount:         3,
		AbsentCount:          1,
		WorkingDays:          43,
		WorkingDaysToDate:    4,
		LeaveTaken:           4,
		LateClockIns:         2,
	}, resp)
}

func TestAttendanceService_GetAttendanceSummary_NoWorkingDays(t *testing.T) {
	ctx := context.Background()
	svc := newTestAttendanceService(&fakeAttendanceRepository{
		workingDays: map[time.Month]int{time.December: 20},
	}, &fakeLeaveReader{}, &fakeCalendar{}, false)

	_, err := svc.GetAttendanceSummary(ctx, employee)

	assert.ErrorIs(t, err, calendar.ErrWorkingDaysNotFound)
}

func TestAttendanceService_GetAttendanceSummary_NoQuota(t *testing.T) {
	ctx := context.Background()
	svc := newTestAttendanceService(&fakeAttendanceRepository{
		workingDays: map[time.Month]int{time.August: 20},
	}, &fakeLeaveReader{}, &fakeCalendar{}, false)
	svc.quotas = &fakeQuotaReader{}

	_, err := svc.GetAttendanceSummary(ctx, employee)

	assert.ErrorIs(t, err, leave.ErrQuotaNotFound)
}

// Test present days beyond the stored working days cap the percentage
func TestAttendanceService_GetAttendanceSummary_PercentageCapped(t *testing.T) {
	ctx := context.Background()
	svc := newTestAttendanceService(&fakeAttendanceRepository{
		dates:       []time.Time{date("2024-08-03"), date("2024-08-04")},
		workingDays: map[time.Month]int{time.August: 1},
	}, &fakeLeaveReader{}, &fakeCalendar{}, false)

	resp, err := svc.GetAttendanceSummary(ctx, employee)

	require.NoError(t, err)
	assert.Equal(t, 100, resp.AttendancePercentage)
	assert.Zero(t, resp.AbsentCount)
}

func TestAttendanceService_GetLateClockIns(t *testing.T) {
	ctx := context.Background()
	repo := &fakeAttendanceRepository{late: []time.Time{date("2024-07-31"), date("2024-08-01"), date("2024-08-19")}}
	svc := newTestAttendanceService(repo, &fakeLeaveReader{}, &fakeCalendar{}, false)

	resp, err := svc.GetLateClockIns(ctx, employee, attendance.MonthlyOverviewRequest{})

	require.NoError(t, err)
	assert.Equal(t, attendance.LateClockInsResponse{Month: 8, Year: 2024, LateClockIns: 2}, resp)
	assert.Equal(t, calendar.MonthRange(2024, time.August), repo.lastRange)

	resp, err = svc.GetLateClockIns(ctx, employee, attendance.MonthlyOverviewRequest{Month: "7", Year: "2024"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.LateClockIns)
}

func TestAttendanceService_GetMonthlyLeaves(t *testing.T) {
	ctx := context.Background()
	repo := &fakeAttendanceRepository{leaveStarts: []time.Time{date("2024-08-05"), date("2024-08-26"), date("2024-09-02")}}
	svc := newTestAttendanceService(repo, &fakeLeaveReader{}, &fakeCalendar{}, false)

	resp, err := svc.GetMonthlyLeaves(ctx, employee, attendance.MonthlyOverviewRequest{})

	require.NoError(t, err)
	assert.Equal(t, attendance.MonthlyLeavesResponse{Month: 8, Year: 2024, LeavesTaken: 2}, resp)
}

func TestAttendanceService_GetMonthlyLeaves_MissingIdentity(t *testing.T) {
	svc := newTestAttendanceService(&fakeAttendanceRepository{}, &fakeLeaveReader{}, &fakeCalendar{}, false)

	_, err := svc.GetMonthlyLeaves(context.Background(), user.Identity{CompanyID: testCompanyID}, attendance.MonthlyOverviewRequest{})

	assert.ErrorIs(t, err, user.ErrEmployeeIDRequired)
}
