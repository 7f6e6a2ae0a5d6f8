package postgresql

import (
	"context"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workingDaysSummaryRepositoryImpl struct {
	db *database.DB
}

func NewWorkingDaysSummaryRepository(db *database.DB) calendar.WorkingDaysSummaryRepository {
	return &workingDaysSummaryRepositoryImpl{db: db}
}

// Get implements calendar.WorkingDaysSummaryRepository.
func (r *workingDaysSummaryRepositoryImpl) Get(ctx context.Context, companyID string, year, month int) (calendar.WorkingDaysSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT company_id, year, month, total_working_days, updated_at
		FROM working_days_summary
		WHERE company_id = $1 AND year = $2 AND month = $3
	`

	var s calendar.WorkingDaysSummary
	err := q.QueryRow(ctx, query, companyID, year, month).Scan(
		&s.CompanyID, &s.Year, &s.Month, &s.TotalWorkingDays, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return calendar.WorkingDaysSummary{}, calendar.ErrWorkingDaysNotFound
		}
		return calendar.WorkingDaysSummary{}, err
	}

	return s, nil
}

// Upsert implements calendar.WorkingDaysSummaryRepository.
func (r *workingDaysSummaryRepositoryImpl) Upsert(ctx context.Context, summary calendar.WorkingDaysSummary) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO working_days_summary (company_id, year, month, total_working_days, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (company_id, year, month)
		DO UPDATE SET total_working_days = EXCLUDED.total_working_days, updated_at = NOW()
	`

	_, err := q.Exec(ctx, query, summary.CompanyID, summary.Year, summary.Month, summary.TotalWorkingDays)
	return err
}
