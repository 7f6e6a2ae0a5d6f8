package postgresql

import (
	"context"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type weekendRepositoryImpl struct {
	db *database.DB
}

func NewWeekendRepository(db *database.DB) calendar.WeekendRepository {
	return &weekendRepositoryImpl{db: db}
}

// GetByCompanyID implements calendar.WeekendRepository.
func (r *weekendRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) (calendar.WeekendConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT weekend_days FROM weekends WHERE company_id = $1`

	var days []string
	if err := q.QueryRow(ctx, query, companyID).Scan(&days); err != nil {
		if err == pgx.ErrNoRows {
			return calendar.WeekendConfig{CompanyID: companyID}, nil
		}
		return calendar.WeekendConfig{}, err
	}

	return calendar.ParseWeekendConfig(companyID, days), nil
}

// ListCompanyIDs implements calendar.WeekendRepository.
func (r *weekendRepositoryImpl) ListCompanyIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id FROM companies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
