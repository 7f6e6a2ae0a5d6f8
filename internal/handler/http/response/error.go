package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/user"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var quotaErr *leave.QuotaExceededError
	if errors.As(err, &quotaErr) {
		Rejected(w, "QUOTA_EXCEEDED", leave.ErrQuotaExceeded.Error(), map[string]int{
			"holidays_left":          quotaErr.StandardLeft,
			"optional_holidays_left": quotaErr.OptionalLeft,
		})
		return
	}

	var optionalErr *leave.OptionalLeaveOutsideHolidayError
	if errors.As(err, &optionalErr) {
		dates := make([]string, 0, len(optionalErr.AllowedDates))
		for _, d := range optionalErr.AllowedDates {
			dates = append(dates, calendar.FormatDate(d))
		}
		Rejected(w, "OPTIONAL_LEAVE_OUTSIDE_HOLIDAY", optionalErr.Error(), map[string][]string{
			"allowed_optional_dates": dates,
		})
		return
	}

	switch {
	// Identity errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrCompanyIDRequired):
		Forbidden(w, "Company ID not found in token")
	case errors.Is(err, user.ErrEmployeeIDRequired):
		Forbidden(w, "Employee ID not found in token")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrNoChargeableDays):
		Rejected(w, "NO_CHARGEABLE_DAYS", err.Error(), nil)
	case errors.Is(err, leave.ErrOverlappingRequest):
		Rejected(w, "OVERLAPPING_REQUEST", err.Error(), nil)
	case errors.Is(err, leave.ErrInvalidDecision):
		Rejected(w, "INVALID_DECISION", err.Error(), nil)
	case errors.Is(err, leave.ErrInvalidCategory):
		Rejected(w, "INVALID_LEAVE_TYPE", err.Error(), nil)
	case errors.Is(err, leave.ErrQuotaNotFound):
		NotFound(w, "Leave limits not set for user")

	// Calendar domain errors
	case errors.Is(err, calendar.ErrInvalidDateRange):
		Rejected(w, "INVALID_DATE_RANGE", err.Error(), nil)
	case errors.Is(err, calendar.ErrWorkingDaysNotFound):
		NotFound(w, "No working days data found")
	case errors.Is(err, calendar.ErrInvalidMonth):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidDate):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
