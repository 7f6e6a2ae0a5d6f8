package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// ListDates implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListDates(ctx context.Context, employeeID, companyID string, dr calendar.DateRange) ([]time.Time, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT date
		FROM attendance
		WHERE user_id = $1 AND company_id = $2 AND date BETWEEN $3 AND $4
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, dr.From, dr.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, calendar.Normalize(d))
	}

	return dates, rows.Err()
}

// GetByDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByDate(ctx context.Context, employeeID, companyID string, date time.Time) (*attendance.DayRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.user_id, a.company_id, a.date, a.clock_in, a.clock_out, a.status,
			c.expected_clock_in::text
		FROM attendance a
		INNER JOIN companies c ON a.company_id = c.id
		WHERE a.user_id = $1 AND a.company_id = $2 AND a.date = $3
	`

	var rec attendance.DayRecord
	err := q.QueryRow(ctx, query, employeeID, companyID, date).Scan(
		&rec.ID,
		&rec.EmployeeID,
		&rec.CompanyID,
		&rec.Date,
		&rec.ClockIn,
		&rec.ClockOut,
		&rec.Status,
		&rec.ExpectedClockIn,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &rec, nil
}

// CountLateClockIns implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CountLateClockIns(ctx context.Context, employeeID, companyID string, dr calendar.DateRange) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM attendance a
		INNER JOIN companies c ON a.company_id = c.id
		WHERE a.user_id = $1 AND a.company_id = $2
			AND a.date BETWEEN $3 AND $4
			AND a.clock_in::time > c.expected_clock_in
	`

	var count int
	if err := q.QueryRow(ctx, query, employeeID, companyID, dr.From, dr.To).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// CountApprovedLeaves implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CountApprovedLeaves(ctx context.Context, employeeID, companyID string, dr calendar.DateRange) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM leave_requests
		WHERE user_id = $1 AND company_id = $2 AND status = 'Approved'
			AND from_date BETWEEN $3 AND $4
	`

	var count int
	if err := q.QueryRow(ctx, query, employeeID, companyID, dr.From, dr.To).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// SumWorkingDays implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) SumWorkingDays(ctx context.Context, companyID string, year int, through time.Month) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(total_working_days), 0)
		FROM working_days_summary
		WHERE company_id = $1 AND year = $2 AND month <= $3
	`

	var total int
	if err := q.QueryRow(ctx, query, companyID, year, int(through)).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}
