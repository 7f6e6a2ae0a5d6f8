package leave

import (
	"context"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
)

// LeaveQuotaRepository - interface for leave_limits table
type LeaveQuotaRepository interface {
	GetByEmployee(ctx context.Context, employeeID, companyID string) (LeaveQuota, error)
	// GetForUpdate locks the row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, employeeID, companyID string) (LeaveQuota, error)
	IncrementTaken(ctx context.Context, employeeID, companyID string, column QuotaColumn, days int) error
	// DecrementTaken never lowers a counter below zero.
	DecrementTaken(ctx context.Context, employeeID, companyID string, column QuotaColumn, days int) error
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// GetByIDForUpdate re-reads a request and holds its row lock for the
	// rest of the transaction.
	GetByIDForUpdate(ctx context.Context, id string) (LeaveRequest, error)
	// LockEmployee serializes leave submissions of one employee for the
	// rest of the transaction.
	LockEmployee(ctx context.Context, employeeID string) error
	CheckOverlapping(ctx context.Context, employeeID string, r calendar.DateRange) (bool, error)
	// UpdateStatus decides a pending request and fails with
	// ErrLeaveRequestAlreadyProcessed otherwise.
	UpdateStatus(ctx context.Context, id string, status LeaveRequestStatus, quotaReserved bool) error
	Delete(ctx context.Context, id string) error

	// ListPendingByCompany returns the pending requests of every employee
	// of the company.
	ListPendingByCompany(ctx context.Context, companyID string) ([]LeaveRequest, error)
	ListScheduled(ctx context.Context, employeeID string, today time.Time) ([]LeaveRequest, error)
	ListHistory(ctx context.Context, employeeID string, today time.Time) ([]LeaveRequest, error)
	// ListOverlapping returns the employee's requests of any status that
	// intersect r.
	ListOverlapping(ctx context.Context, employeeID, companyID string, r calendar.DateRange) ([]LeaveRequest, error)
	ListUpcomingApproved(ctx context.Context, employeeID, companyID string, after time.Time, limit int) ([]UpcomingEvent, error)
}

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	ListByCompany(ctx context.Context, companyID string) ([]LeaveTypeOption, error)
}
