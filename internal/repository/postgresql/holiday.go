package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) calendar.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// ListOverlapping implements calendar.HolidayRepository.
func (r *holidayRepositoryImpl) ListOverlapping(ctx context.Context, companyID string, dr calendar.DateRange) ([]calendar.HolidayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, from_date, to_date, leave_type, company_id
		FROM holidays
		WHERE (company_id = $1 OR company_id IS NULL)
			AND from_date <= $3 AND to_date >= $2
		ORDER BY from_date, name
	`

	rows, err := q.Query(ctx, query, companyID, dr.From, dr.To)
	if err != nil {
		return nil, err
	}
	return scanHolidays(rows)
}

// ListUpcoming implements calendar.HolidayRepository.
func (r *holidayRepositoryImpl) ListUpcoming(ctx context.Context, companyID string, from time.Time) ([]calendar.HolidayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, from_date, to_date, leave_type, company_id
		FROM holidays
		WHERE (company_id = $1 OR company_id IS NULL)
			AND from_date >= $2
		ORDER BY from_date, name
	`

	rows, err := q.Query(ctx, query, companyID, from)
	if err != nil {
		return nil, err
	}
	return scanHolidays(rows)
}

// Create implements calendar.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, holiday calendar.HolidayPeriod) (calendar.HolidayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (name, from_date, to_date, leave_type, company_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		holiday.Name,
		holiday.Range.From,
		holiday.Range.To,
		holiday.Kind.String(),
		holiday.CompanyID,
	).Scan(&holiday.ID)
	if err != nil {
		return calendar.HolidayPeriod{}, err
	}

	return holiday, nil
}

func scanHolidays(rows pgx.Rows) ([]calendar.HolidayPeriod, error) {
	defer rows.Close()

	holidays := make([]calendar.HolidayPeriod, 0)
	for rows.Next() {
		var (
			h        calendar.HolidayPeriod
			from, to time.Time
			kind     string
		)
		if err := rows.Scan(&h.ID, &h.Name, &from, &to, &kind, &h.CompanyID); err != nil {
			return nil, err
		}
		h.Range = calendar.DateRange{From: calendar.Normalize(from), To: calendar.Normalize(to)}
		h.Kind = calendar.ParseHolidayKind(kind)
		holidays = append(holidays, h)
	}

	return holidays, rows.Err()
}
