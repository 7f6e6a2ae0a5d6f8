package http

import (
	"net/http"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/user"
	"github.com/cmlabs-hris/leave-calendar/internal/handler/http/middleware"
	"github.com/cmlabs-hris/leave-calendar/internal/handler/http/response"
)

type CalendarHandler interface {
	WorkingDays(w http.ResponseWriter, r *http.Request)
	UpcomingHolidays(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct {
	calendarService calendar.CalendarService
}

func NewCalendarHandler(calendarService calendar.CalendarService) CalendarHandler {
	return &calendarHandlerImpl{
		calendarService: calendarService,
	}
}

// WorkingDays implements CalendarHandler.
func (h *calendarHandlerImpl) WorkingDays(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	if identity.CompanyID == "" {
		response.HandleError(w, user.ErrCompanyIDRequired)
		return
	}

	req := calendar.WorkingDaysRequest{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}

	preview, err := h.calendarService.PreviewWorkingDays(r.Context(), identity.CompanyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, preview)
}

// UpcomingHolidays implements CalendarHandler.
func (h *calendarHandlerImpl) UpcomingHolidays(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	if identity.CompanyID == "" {
		response.HandleError(w, user.ErrCompanyIDRequired)
		return
	}

	holidays, err := h.calendarService.UpcomingHolidays(r.Context(), identity.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, holidays)
}
