package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `lr.id, lr.user_id, lr.company_id, lr.leave_type, lr.from_date, lr.to_date,
	lr.reason, lr.num_days, lr.status, lr.quota_reserved, lr.applied_at, lr.updated_at`

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, user_id, company_id, from_date, to_date, reason, leave_type,
			num_days, status, quota_reserved, applied_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING applied_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID,
		request.EmployeeID,
		request.CompanyID,
		request.Range.From,
		request.Range.To,
		request.Reason,
		request.Category.String(),
		request.ChargeableDays,
		string(request.Status),
		request.QuotaReserved,
	).Scan(&request.AppliedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests lr WHERE lr.id = $1`

	request, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

// GetByIDForUpdate implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests lr WHERE lr.id = $1 FOR UPDATE`

	request, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

// LockEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) LockEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`, employeeID)
	return err
}

// CheckOverlapping implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) CheckOverlapping(ctx context.Context, employeeID string, dr calendar.DateRange) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE user_id = $1 AND from_date <= $3 AND to_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, dr.From, dr.To).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.LeaveRequestStatus, quotaReserved bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, quota_reserved = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'Pending'
	`

	tag, err := q.Exec(ctx, query, id, string(status), quotaReserved)
	if err != nil {
		return err
	}
	// Only pending requests can be decided
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestAlreadyProcessed
	}

	return nil
}

// Delete implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

// ListPendingByCompany implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListPendingByCompany(ctx context.Context, companyID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `, u.name
		FROM leave_requests lr
		INNER JOIN users u ON lr.user_id = u.id
		WHERE lr.company_id = $1 AND lr.status = 'Pending'
		ORDER BY lr.applied_at
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		var name string
		request, err := scanLeaveRequest(rows, &name)
		if err != nil {
			return nil, err
		}
		request.EmployeeName = &name
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

// ListScheduled implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListScheduled(ctx context.Context, employeeID string, today time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.user_id = $1 AND lr.from_date >= $2
		ORDER BY lr.from_date
	`

	rows, err := q.Query(ctx, query, employeeID, today)
	if err != nil {
		return nil, err
	}
	return scanLeaveRequests(rows)
}

// ListHistory implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListHistory(ctx context.Context, employeeID string, today time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.user_id = $1 AND lr.from_date < $2
		ORDER BY lr.from_date DESC
	`

	rows, err := q.Query(ctx, query, employeeID, today)
	if err != nil {
		return nil, err
	}
	return scanLeaveRequests(rows)
}

// ListOverlapping implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListOverlapping(ctx context.Context, employeeID, companyID string, dr calendar.DateRange) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.user_id = $1 AND lr.company_id = $2
			AND lr.from_date <= $4 AND lr.to_date >= $3
		ORDER BY lr.from_date
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, dr.From, dr.To)
	if err != nil {
		return nil, err
	}
	return scanLeaveRequests(rows)
}

// ListUpcomingApproved implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListUpcomingApproved(ctx context.Context, employeeID, companyID string, after time.Time, limit int) ([]leave.UpcomingEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		(
			SELECT from_date AS date, reason AS title
			FROM leave_requests
			WHERE status = 'Approved' AND from_date > $3
				AND user_id = $1 AND company_id = $2
		)
		UNION
		(
			SELECT from_date AS date, name AS title
			FROM holidays
			WHERE from_date > $3 AND (company_id = $2 OR company_id IS NULL)
		)
		ORDER BY date
		LIMIT $4
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, after, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]leave.UpcomingEvent, 0, limit)
	for rows.Next() {
		var e leave.UpcomingEvent
		if err := rows.Scan(&e.Date, &e.Title); err != nil {
			return nil, err
		}
		e.Date = calendar.Normalize(e.Date)
		events = append(events, e)
	}

	return events, rows.Err()
}

func scanLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		request, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

// scanLeaveRequest reads leaveRequestColumns followed by any extra targets.
func scanLeaveRequest(row pgx.Row, extra ...any) (leave.LeaveRequest, error) {
	var (
		lr               leave.LeaveRequest
		category, status string
		from, to         time.Time
	)

	dest := []any{
		&lr.ID,
		&lr.EmployeeID,
		&lr.CompanyID,
		&category,
		&from,
		&to,
		&lr.Reason,
		&lr.ChargeableDays,
		&status,
		&lr.QuotaReserved,
		&lr.AppliedAt,
		&lr.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return leave.LeaveRequest{}, err
	}

	parsed, err := leave.ParseCategory(category)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	lr.Category = parsed
	lr.Range = calendar.DateRange{From: calendar.Normalize(from), To: calendar.Normalize(to)}
	lr.Status = leave.LeaveRequestStatus(status)

	return lr, nil
}
