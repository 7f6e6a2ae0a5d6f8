package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/user"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/database"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/events"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/validator"
	calendarService "github.com/cmlabs-hris/leave-calendar/internal/service/calendar"
	"github.com/google/uuid"
)

const upcomingEventsLimit = 2

type LeaveServiceImpl struct {
	tx database.Transactor
	leave.LeaveRequestRepository
	leave.LeaveQuotaRepository
	leave.LeaveTypeRepository
	calendar        calendar.CalendarService
	ledger          *QuotaLedger
	publisher       events.Publisher
	reservationMode leave.ReservationMode
	now             func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	leaveRequestRepository leave.LeaveRequestRepository,
	leaveQuotaRepository leave.LeaveQuotaRepository,
	leaveTypeRepository leave.LeaveTypeRepository,
	calendarSvc calendar.CalendarService,
	publisher events.Publisher,
	reservationMode leave.ReservationMode,
) *LeaveServiceImpl {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if reservationMode == "" {
		reservationMode = leave.ReserveOnSubmission
	}
	return &LeaveServiceImpl{
		tx:                     tx,
		LeaveRequestRepository: leaveRequestRepository,
		LeaveQuotaRepository:   leaveQuotaRepository,
		LeaveTypeRepository:    leaveTypeRepository,
		calendar:               calendarSvc,
		ledger:                 NewQuotaLedger(leaveQuotaRepository),
		publisher:              publisher,
		reservationMode:        reservationMode,
		now:                    time.Now,
	}
}

// ApplyLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) ApplyLeave(ctx context.Context, identity user.Identity, req leave.ApplyLeaveRequest) (leave.ApplyLeaveResponse, error) {
	if err := identity.Validate(); err != nil {
		return leave.ApplyLeaveResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.ApplyLeaveResponse{}, err
	}

	r, err := req.Range()
	if err != nil {
		return leave.ApplyLeaveResponse{}, err
	}
	category, err := leave.ParseCategory(req.LeaveType)
	if err != nil {
		return leave.ApplyLeaveResponse{}, err
	}

	classifier, err := l.calendar.Classifier(ctx, identity.CompanyID, r)
	if err != nil {
		return leave.ApplyLeaveResponse{}, l.logFailure(ctx, identity, "apply_leave", err)
	}
	workingDays := calendarService.BuildWorkingDays(r, classifier)

	if category.IsOptional() {
		for _, d := range workingDays {
			if classifier.Classify(d).Holiday != calendar.HolidayOptional {
				return leave.ApplyLeaveResponse{}, &leave.OptionalLeaveOutsideHolidayError{
					AllowedDates: classifier.OptionalHolidayDates(r),
				}
			}
		}
	}

	if len(workingDays) == 0 {
		return leave.ApplyLeaveResponse{}, leave.ErrNoChargeableDays
	}
	days := len(workingDays)

	var created leave.LeaveRequest
	var quota leave.LeaveQuota
	err = l.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := l.LeaveRequestRepository.LockEmployee(txCtx, identity.EmployeeID); err != nil {
			return fmt.Errorf("failed to lock employee: %w", err)
		}

		overlapping, err := l.LeaveRequestRepository.CheckOverlapping(txCtx, identity.EmployeeID, r)
		if err != nil {
			return fmt.Errorf("failed to check overlapping leave requests: %w", err)
		}
		if overlapping {
			return leave.ErrOverlappingRequest
		}

		quota, err = l.ledger.CheckCapacity(txCtx, identity.EmployeeID, identity.CompanyID, category, days)
		if err != nil {
			return err
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate leave request ID: %w", err)
		}

		reserve := l.reservationMode == leave.ReserveOnSubmission
		created, err = l.LeaveRequestRepository.Create(txCtx, leave.LeaveRequest{
			ID:             id.String(),
			EmployeeID:     identity.EmployeeID,
			CompanyID:      identity.CompanyID,
			Category:       category,
			Range:          r,
			Reason:         req.Reason,
			ChargeableDays: days,
			Status:         leave.LeaveRequestStatusPending,
			QuotaReserved:  reserve,
		})
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}

		if reserve {
			if err := l.ledger.Apply(txCtx, identity.EmployeeID, identity.CompanyID, category, days); err != nil {
				return err
			}
			quota = quota.Applied(category, days)
		}
		return nil
	})
	if err != nil {
		return leave.ApplyLeaveResponse{}, l.logFailure(ctx, identity, "apply_leave", err)
	}

	l.publish(ctx, events.LeaveApplied, created)

	return leave.ApplyLeaveResponse{
		Message:              "Leave applied successfully",
		RequestID:            created.ID,
		ChargeableDays:       days,
		WorkingDays:          formatDates(workingDays),
		HolidaysLeft:         quota.StandardLeft(),
		OptionalHolidaysLeft: quota.OptionalLeft(),
	}, nil
}

// HandleDecision implements leave.LeaveService.
func (l *LeaveServiceImpl) HandleDecision(ctx context.Context, identity user.Identity, req leave.DecisionRequest) (leave.DecisionResponse, error) {
	if identity.CompanyID == "" {
		return leave.DecisionResponse{}, user.ErrCompanyIDRequired
	}
	if !identity.IsManager() {
		return leave.DecisionResponse{}, user.ErrManagerAccessRequired
	}
	decision, err := leave.ParseDecision(req.Decision)
	if err != nil {
		return leave.DecisionResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.DecisionResponse{}, err
	}

	var request leave.LeaveRequest
	err = l.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		request, err = l.lockRequest(txCtx, req.RequestID)
		if err != nil {
			return err
		}
		if request.CompanyID != identity.CompanyID {
			return leave.ErrLeaveRequestNotFound
		}
		if request.Status != leave.LeaveRequestStatusPending {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		reserved := request.QuotaReserved
		switch decision {
		case leave.LeaveRequestStatusApproved:
			if !reserved {
				if _, err := l.ledger.CheckCapacity(txCtx, request.EmployeeID, request.CompanyID, request.Category, request.ChargeableDays); err != nil {
					return err
				}
				if err := l.ledger.Apply(txCtx, request.EmployeeID, request.CompanyID, request.Category, request.ChargeableDays); err != nil {
					return err
				}
				reserved = true
			}
		case leave.LeaveRequestStatusRejected:
			if reserved {
				if err := l.ledger.Reverse(txCtx, request.EmployeeID, request.CompanyID, request.Category, request.ChargeableDays); err != nil {
					return err
				}
				reserved = false
			}
		}

		if err := l.LeaveRequestRepository.UpdateStatus(txCtx, request.ID, decision, reserved); err != nil {
			return fmt.Errorf("failed to update leave request status: %w", err)
		}
		request.Status = decision
		request.QuotaReserved = reserved
		return nil
	})
	if err != nil {
		return leave.DecisionResponse{}, l.logFailure(ctx, identity, "handle_decision", err)
	}

	eventType := events.LeaveApproved
	if decision == leave.LeaveRequestStatusRejected {
		eventType = events.LeaveRejected
	}
	l.publish(ctx, eventType, request)

	return leave.DecisionResponse{Message: "Leave " + string(decision)}, nil
}

// CancelLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) CancelLeave(ctx context.Context, identity user.Identity, req leave.CancelLeaveRequest) error {
	if err := identity.Validate(); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	var request leave.LeaveRequest
	err := l.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		request, err = l.lockRequest(txCtx, req.ID)
		if err != nil {
			return err
		}
		if request.EmployeeID != identity.EmployeeID || request.CompanyID != identity.CompanyID {
			return leave.ErrLeaveRequestNotFound
		}

		if request.QuotaReserved {
			days := request.ChargeableDays
			// Approved leave is released by calendar span.
			if request.Status == leave.LeaveRequestStatusApproved {
				days = request.Range.Span()
			}
			if err := l.ledger.Reverse(txCtx, request.EmployeeID, request.CompanyID, request.Category, days); err != nil {
				return err
			}
		}

		if err := l.LeaveRequestRepository.Delete(txCtx, request.ID); err != nil {
			return fmt.Errorf("failed to delete leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return l.logFailure(ctx, identity, "cancel_leave", err)
	}

	l.publish(ctx, events.LeaveCancelled, request)
	return nil
}

// lockRequest takes the owner's lock and returns the request as it stands
// once the lock is held. The first read only locates the owner.
func (l *LeaveServiceImpl) lockRequest(ctx context.Context, id string) (leave.LeaveRequest, error) {
	located, err := l.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if err := l.LeaveRequestRepository.LockEmployee(ctx, located.EmployeeID); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to lock employee: %w", err)
	}
	return l.LeaveRequestRepository.GetByIDForUpdate(ctx, id)
}

// GetLeaveLimits implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveLimits(ctx context.Context, identity user.Identity) (leave.LeaveLimitsResponse, error) {
	if err := identity.Validate(); err != nil {
		return leave.LeaveLimitsResponse{}, err
	}

	quota, err := l.LeaveQuotaRepository.GetByEmployee(ctx, identity.EmployeeID, identity.CompanyID)
	if err != nil {
		return leave.LeaveLimitsResponse{}, l.logFailure(ctx, identity, "get_leave_limits", err)
	}

	return leave.NewLeaveLimitsResponse(quota), nil
}

// GetLeaveTypes implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveTypes(ctx context.Context, identity user.Identity) ([]leave.LeaveTypeResponse, error) {
	if err := identity.Validate(); err != nil {
		return nil, err
	}

	options, err := l.LeaveTypeRepository.ListByCompany(ctx, identity.CompanyID)
	if err != nil {
		return nil, l.logFailure(ctx, identity, "get_leave_types", fmt.Errorf("failed to list leave types: %w", err))
	}

	quota, err := l.LeaveQuotaRepository.GetByEmployee(ctx, identity.EmployeeID, identity.CompanyID)
	if err != nil {
		if !errors.Is(err, leave.ErrQuotaNotFound) {
			return nil, l.logFailure(ctx, identity, "get_leave_types", fmt.Errorf("failed to get leave limits: %w", err))
		}
		quota = leave.LeaveQuota{}
	}

	responses := make([]leave.LeaveTypeResponse, 0, len(options))
	for _, opt := range options {
		label := opt.Label
		category, err := leave.ParseCategory(opt.Value)
		if err == nil && !category.IsUnpaid() {
			label = fmt.Sprintf("%s (%d left)", opt.Label, max(quota.Left(category), 0))
		}
		responses = append(responses, leave.LeaveTypeResponse{Label: label, Value: opt.Value})
	}
	return responses, nil
}

// ListPending implements leave.LeaveService.
func (l *LeaveServiceImpl) ListPending(ctx context.Context, identity user.Identity) ([]leave.LeaveRequestResponse, error) {
	if identity.CompanyID == "" {
		return nil, user.ErrCompanyIDRequired
	}

	requests, err := l.LeaveRequestRepository.ListPendingByCompany(ctx, identity.CompanyID)
	if err != nil {
		return nil, l.logFailure(ctx, identity, "list_pending", fmt.Errorf("failed to list pending leave requests: %w", err))
	}
	return toResponses(requests), nil
}

// ListScheduled implements leave.LeaveService.
func (l *LeaveServiceImpl) ListScheduled(ctx context.Context, identity user.Identity) ([]leave.LeaveRequestResponse, error) {
	if err := identity.Validate(); err != nil {
		return nil, err
	}

	requests, err := l.LeaveRequestRepository.ListScheduled(ctx, identity.EmployeeID, calendar.Normalize(l.now()))
	if err != nil {
		return nil, l.logFailure(ctx, identity, "list_scheduled", fmt.Errorf("failed to list scheduled leave requests: %w", err))
	}
	return toResponses(requests), nil
}

// ListHistory implements leave.LeaveService.
func (l *LeaveServiceImpl) ListHistory(ctx context.Context, identity user.Identity) ([]leave.LeaveRequestResponse, error) {
	if err := identity.Validate(); err != nil {
		return nil, err
	}

	requests, err := l.LeaveRequestRepository.ListHistory(ctx, identity.EmployeeID, calendar.Normalize(l.now()))
	if err != nil {
		return nil, l.logFailure(ctx, identity, "list_history", fmt.Errorf("failed to list leave history: %w", err))
	}
	return toResponses(requests), nil
}

// ListUpcoming implements leave.LeaveService.
func (l *LeaveServiceImpl) ListUpcoming(ctx context.Context, identity user.Identity) ([]leave.UpcomingEventResponse, error) {
	if err := identity.Validate(); err != nil {
		return nil, err
	}

	upcoming, err := l.LeaveRequestRepository.ListUpcomingApproved(ctx, identity.EmployeeID, identity.CompanyID, calendar.Normalize(l.now()), upcomingEventsLimit)
	if err != nil {
		return nil, l.logFailure(ctx, identity, "list_upcoming", fmt.Errorf("failed to list upcoming events: %w", err))
	}

	responses := make([]leave.UpcomingEventResponse, 0, len(upcoming))
	for _, e := range upcoming {
		responses = append(responses, leave.UpcomingEventResponse{
			Date:  calendar.FormatDate(e.Date),
			Title: e.Title,
		})
	}
	return responses, nil
}

func (l *LeaveServiceImpl) publish(ctx context.Context, eventType events.Type, request leave.LeaveRequest) {
	event := events.Event{
		Type:           eventType,
		RequestID:      request.ID,
		EmployeeID:     request.EmployeeID,
		CompanyID:      request.CompanyID,
		Category:       request.Category.String(),
		From:           calendar.FormatDate(request.Range.From),
		To:             calendar.FormatDate(request.Range.To),
		ChargeableDays: request.ChargeableDays,
		OccurredAt:     l.now().UTC(),
	}
	if err := l.publisher.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "Failed to publish leave event",
			"type", eventType,
			"request_id", request.ID,
			"error", err,
		)
	}
}

// logFailure logs err when it is not a business rule outcome and returns it unchanged.
func (l *LeaveServiceImpl) logFailure(ctx context.Context, identity user.Identity, operation string, err error) error {
	if isBusinessError(err) {
		return err
	}
	slog.ErrorContext(ctx, "Leave operation failed",
		"employee_id", identity.EmployeeID,
		"company_id", identity.CompanyID,
		"operation", operation,
		"error", err,
	)
	return err
}

var businessErrors = []error{
	leave.ErrLeaveRequestNotFound,
	leave.ErrLeaveRequestAlreadyProcessed,
	leave.ErrQuotaNotFound,
	leave.ErrQuotaExceeded,
	leave.ErrNoChargeableDays,
	leave.ErrOptionalLeaveOutsideHoliday,
	leave.ErrOverlappingRequest,
	leave.ErrInvalidDecision,
	leave.ErrInvalidCategory,
	calendar.ErrInvalidDateRange,
}

func isBusinessError(err error) bool {
	for _, target := range businessErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

func toResponses(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(r))
	}
	return responses
}

func formatDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, calendar.FormatDate(d))
	}
	return out
}
