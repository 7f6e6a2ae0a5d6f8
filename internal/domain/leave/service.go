package leave

import (
	"context"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/user"
)

type LeaveService interface {
	ApplyLeave(ctx context.Context, identity user.Identity, req ApplyLeaveRequest) (ApplyLeaveResponse, error)
	HandleDecision(ctx context.Context, identity user.Identity, req DecisionRequest) (DecisionResponse, error)
	CancelLeave(ctx context.Context, identity user.Identity, req CancelLeaveRequest) error

	GetLeaveLimits(ctx context.Context, identity user.Identity) (LeaveLimitsResponse, error)
	GetLeaveTypes(ctx context.Context, identity user.Identity) ([]LeaveTypeResponse, error)
	ListPending(ctx context.Context, identity user.Identity) ([]LeaveRequestResponse, error)
	ListScheduled(ctx context.Context, identity user.Identity) ([]LeaveRequestResponse, error)
	ListHistory(ctx context.Context, identity user.Identity) ([]LeaveRequestResponse, error)
	ListUpcoming(ctx context.Context, identity user.Identity) ([]UpcomingEventResponse, error)
}
