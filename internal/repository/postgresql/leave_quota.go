package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveQuotaRepositoryImpl struct {
	db *database.DB
}

func NewLeaveQuotaRepository(db *database.DB) leave.LeaveQuotaRepository {
	return &leaveQuotaRepositoryImpl{db: db}
}

const leaveQuotaSelect = `
	SELECT employee_id, company_id, allowed_holidays, holidays_taken,
		allowed_optional_holidays, optional_holidays_taken, updated_at
	FROM leave_limits
	WHERE employee_id = $1 AND company_id = $2
`

// GetByEmployee implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) GetByEmployee(ctx context.Context, employeeID, companyID string) (leave.LeaveQuota, error) {
	return r.get(ctx, leaveQuotaSelect, employeeID, companyID)
}

// GetForUpdate implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) GetForUpdate(ctx context.Context, employeeID, companyID string) (leave.LeaveQuota, error) {
	return r.get(ctx, leaveQuotaSelect+` FOR UPDATE`, employeeID, companyID)
}

func (r *leaveQuotaRepositoryImpl) get(ctx context.Context, query, employeeID, companyID string) (leave.LeaveQuota, error) {
	q := GetQuerier(ctx, r.db)

	var quota leave.LeaveQuota
	err := q.QueryRow(ctx, query, employeeID, companyID).Scan(
		&quota.EmployeeID,
		&quota.CompanyID,
		&quota.AllowedStandard,
		&quota.StandardTaken,
		&quota.AllowedOptional,
		&quota.OptionalTaken,
		&quota.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveQuota{}, leave.ErrQuotaNotFound
		}
		return leave.LeaveQuota{}, err
	}

	return quota, nil
}

// IncrementTaken implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) IncrementTaken(ctx context.Context, employeeID, companyID string, column leave.QuotaColumn, days int) error {
	name, err := quotaColumnName(column)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE leave_limits
		SET %[1]s = %[1]s + $3, updated_at = NOW()
		WHERE employee_id = $1 AND company_id = $2
	`, name)

	return r.update(ctx, query, employeeID, companyID, days)
}

// DecrementTaken implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) DecrementTaken(ctx context.Context, employeeID, companyID string, column leave.QuotaColumn, days int) error {
	name, err := quotaColumnName(column)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE leave_limits
		SET %[1]s = GREATEST(%[1]s - $3, 0), updated_at = NOW()
		WHERE employee_id = $1 AND company_id = $2
	`, name)

	return r.update(ctx, query, employeeID, companyID, days)
}

func (r *leaveQuotaRepositoryImpl) update(ctx context.Context, query, employeeID, companyID string, days int) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, query, employeeID, companyID, days)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrQuotaNotFound
	}

	return nil
}

// quotaColumnName whitelists the counters that may be interpolated into SQL.
func quotaColumnName(column leave.QuotaColumn) (string, error) {
	switch column {
	case leave.QuotaColumnStandard:
		return "holidays_taken", nil
	case leave.QuotaColumnOptional:
		return "optional_holidays_taken", nil
	default:
		return "", fmt.Errorf("no quota column for %d", column)
	}
}
