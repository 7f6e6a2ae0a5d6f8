package postgresql

import (
	"context"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/database"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

// ListByCompany implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]leave.LeaveTypeOption, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT label, value FROM leave_types WHERE company_id = $1 ORDER BY id`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]leave.LeaveTypeOption, 0)
	for rows.Next() {
		var t leave.LeaveTypeOption
		if err := rows.Scan(&t.Label, &t.Value); err != nil {
			return nil, err
		}
		types = append(types, t)
	}

	return types, rows.Err()
}
