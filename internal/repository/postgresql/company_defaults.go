package postgresql

import (
	"context"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/cmlabs-hris/leave-calendar/internal/fixtures"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/database"
)

type companyDefaultsRepositoryImpl struct {
	db *database.DB
}

func NewCompanyDefaultsRepository(db *database.DB) fixtures.Repository {
	return &companyDefaultsRepositoryImpl{db: db}
}

// InsertLeaveTypes implements fixtures.Repository.
func (r *companyDefaultsRepositoryImpl) InsertLeaveTypes(ctx context.Context, companyID string, types []leave.LeaveTypeOption) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_types (company_id, label, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (company_id, value) DO NOTHING
	`

	inserted := make([]string, 0, len(types))
	for _, t := range types {
		tag, err := q.Exec(ctx, query, companyID, t.Label, t.Value)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() > 0 {
			inserted = append(inserted, t.Value)
		}
	}
	return inserted, nil
}

// InsertWeekend implements fixtures.Repository.
func (r *companyDefaultsRepositoryImpl) InsertWeekend(ctx context.Context, weekend calendar.WeekendConfig) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `
		INSERT INTO weekends (company_id, weekend_days)
		VALUES ($1, $2)
		ON CONFLICT (company_id) DO NOTHING
	`, weekend.CompanyID, weekend.Names()); err != nil {
		return nil, err
	}

	var days []string
	if err := q.QueryRow(ctx, `SELECT weekend_days FROM weekends WHERE company_id = $1`, weekend.CompanyID).Scan(&days); err != nil {
		return nil, err
	}
	return days, nil
}

// EnsureQuotas implements fixtures.Repository.
func (r *companyDefaultsRepositoryImpl) EnsureQuotas(ctx context.Context, companyID string, allowedStandard, allowedOptional int) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_limits (employee_id, company_id, allowed_holidays, allowed_optional_holidays)
		SELECT u.id, u.company_id, $2, $3
		FROM users u
		WHERE u.company_id = $1
		ON CONFLICT (employee_id, company_id) DO NOTHING
	`

	tag, err := q.Exec(ctx, query, companyID, allowedStandard, allowedOptional)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
