package leave

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
)

// QuotaLedger guards the leave_limits counters. Callers run it inside a
// transaction and track idempotency through LeaveRequest.QuotaReserved.
type QuotaLedger struct {
	leave.LeaveQuotaRepository
}

func NewQuotaLedger(leaveQuotaRepository leave.LeaveQuotaRepository) *QuotaLedger {
	return &QuotaLedger{LeaveQuotaRepository: leaveQuotaRepository}
}

// CheckCapacity returns the locked quota row when days more of category fit.
// Unpaid leave always fits; its quota row is read only for display.
func (q *QuotaLedger) CheckCapacity(ctx context.Context, employeeID, companyID string, category leave.Category, days int) (leave.LeaveQuota, error) {
	if category.IsUnpaid() {
		quota, err := q.LeaveQuotaRepository.GetByEmployee(ctx, employeeID, companyID)
		if err != nil {
			if errors.Is(err, leave.ErrQuotaNotFound) {
				return leave.LeaveQuota{EmployeeID: employeeID, CompanyID: companyID}, nil
			}
			return leave.LeaveQuota{}, fmt.Errorf("failed to get leave limits: %w", err)
		}
		return quota, nil
	}

	quota, err := q.LeaveQuotaRepository.GetForUpdate(ctx, employeeID, companyID)
	if err != nil {
		if errors.Is(err, leave.ErrQuotaNotFound) {
			return leave.LeaveQuota{}, err
		}
		return leave.LeaveQuota{}, fmt.Errorf("failed to lock leave limits: %w", err)
	}

	if err := quota.CheckCapacity(category, days); err != nil {
		return quota, err
	}
	return quota, nil
}

// Apply consumes days of category. Unpaid leave is not counted.
func (q *QuotaLedger) Apply(ctx context.Context, employeeID, companyID string, category leave.Category, days int) error {
	column := category.QuotaColumn()
	if column == leave.QuotaColumnNone || days <= 0 {
		return nil
	}
	if err := q.LeaveQuotaRepository.IncrementTaken(ctx, employeeID, companyID, column, days); err != nil {
		return fmt.Errorf("failed to apply leave quota: %w", err)
	}
	return nil
}

// Reverse releases days of category, never below zero.
func (q *QuotaLedger) Reverse(ctx context.Context, employeeID, companyID string, category leave.Category, days int) error {
	column := category.QuotaColumn()
	if column == leave.QuotaColumnNone || days <= 0 {
		return nil
	}
	if err := q.LeaveQuotaRepository.DecrementTaken(ctx, employeeID, companyID, column, days); err != nil {
		return fmt.Errorf("failed to reverse leave quota: %w", err)
	}
	return nil
}
