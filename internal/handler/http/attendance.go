package http

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-calendar/internal/handler/http/middleware"
	"github.com/cmlabs-hris/leave-calendar/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	MonthlyOverview(w http.ResponseWriter, r *http.Request)
	MonthlyOverviewPDF(w http.ResponseWriter, r *http.Request)
	GetByDate(w http.ResponseWriter, r *http.Request)
	WorkingDays(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	LateClockIns(w http.ResponseWriter, r *http.Request)
	MonthlyLeaves(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

func monthQuery(r *http.Request) attendance.MonthlyOverviewRequest {
	return attendance.MonthlyOverviewRequest{
		Month: r.URL.Query().Get("month"),
		Year:  r.URL.Query().Get("year"),
	}
}

// MonthlyOverview implements AttendanceHandler.
func (h *attendanceHandlerImpl) MonthlyOverview(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	overview, err := h.attendanceService.GetMonthlyOverview(r.Context(), identity, monthQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, overview)
}

// MonthlyOverviewPDF implements AttendanceHandler.
func (h *attendanceHandlerImpl) MonthlyOverviewPDF(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	// Buffer so that a failed render can still answer with a JSON error
	var buf bytes.Buffer
	if err := h.attendanceService.RenderMonthlyOverviewPDF(r.Context(), identity, monthQuery(r), &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, "application/pdf", fmt.Sprintf("monthly-overview-%s.pdf", identity.EmployeeID), &buf)
}

// GetByDate implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetByDate(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	day, err := h.attendanceService.GetAttendanceByDate(r.Context(), identity, chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, day)
}

// WorkingDays implements AttendanceHandler.
func (h *attendanceHandlerImpl) WorkingDays(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	summary, err := h.attendanceService.GetWorkingDays(r.Context(), identity, monthQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// Summary implements AttendanceHandler.
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	summary, err := h.attendanceService.GetAttendanceSummary(r.Context(), identity)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// LateClockIns implements AttendanceHandler.
func (h *attendanceHandlerImpl) LateClockIns(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	late, err := h.attendanceService.GetLateClockIns(r.Context(), identity, monthQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, late)
}

// MonthlyLeaves implements AttendanceHandler.
func (h *attendanceHandlerImpl) MonthlyLeaves(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	leaves, err := h.attendanceService.GetMonthlyLeaves(r.Context(), identity, monthQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaves)
}
