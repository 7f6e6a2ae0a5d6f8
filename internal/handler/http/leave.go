package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/cmlabs-hris/leave-calendar/internal/handler/http/middleware"
	"github.com/cmlabs-hris/leave-calendar/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)

	GetLimits(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	ListScheduled(w http.ResponseWriter, r *http.Request)
	ListHistory(w http.ResponseWriter, r *http.Request)
	ListUpcoming(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}

// Apply implements LeaveHandler.
func (l *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req leave.ApplyLeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Apply decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	identity, _ := middleware.GetIdentity(r.Context())
	resp, err := l.leaveService.ApplyLeave(r.Context(), identity, req)
	if err != nil {
		// A missing quota row is a rejected submission, not a missing resource
		if errors.Is(err, leave.ErrQuotaNotFound) {
			response.Rejected(w, "QUOTA_NOT_FOUND", err.Error(), nil)
			return
		}
		response.HandleError(w, err)
		return
	}

	response.Created(w, resp.Message, resp)
}

// Decide implements LeaveHandler.
func (l *LeaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	req := leave.DecisionRequest{
		RequestID: chi.URLParam(r, "id"),
		Decision:  chi.URLParam(r, "decision"),
	}

	identity, _ := middleware.GetIdentity(r.Context())
	resp, err := l.leaveService.HandleDecision(r.Context(), identity, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, resp.Message, resp)
}

// Cancel implements LeaveHandler.
func (l *LeaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	var req leave.CancelLeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Cancel decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	identity, _ := middleware.GetIdentity(r.Context())
	if err := l.leaveService.CancelLeave(r.Context(), identity, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave cancelled successfully", nil)
}

// GetLimits implements LeaveHandler.
func (l *LeaveHandlerImpl) GetLimits(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	limits, err := l.leaveService.GetLeaveLimits(r.Context(), identity)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, limits)
}

// ListTypes implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	types, err := l.leaveService.GetLeaveTypes(r.Context(), identity)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, types)
}

// ListPending implements LeaveHandler.
func (l *LeaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	requests, err := l.leaveService.ListPending(r.Context(), identity)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListScheduled implements LeaveHandler.
func (l *LeaveHandlerImpl) ListScheduled(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	requests, err := l.leaveService.ListScheduled(r.Context(), identity)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListHistory implements LeaveHandler.
func (l *LeaveHandlerImpl) ListHistory(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	requests, err := l.leaveService.ListHistory(r.Context(), identity)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListUpcoming implements LeaveHandler.
func (l *LeaveHandlerImpl) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	events, err := l.leaveService.ListUpcoming(r.Context(), identity)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, events)
}
