package leave

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/validator"
)

type ApplyLeaveRequest struct {
	LeaveType string `json:"leave_type" validate:"required,max=100"`
	FromDate  string `json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate    string `json:"to_date" validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason" validate:"max=1000"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}

	if !validator.IsEmpty(r.LeaveType) {
		if _, err := ParseCategory(r.LeaveType); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "leave_type",
				Message: "leave_type is invalid",
			})
		}
	}

	if calendar.ExceedsMaxSpan(r.FromDate, r.ToDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: fmt.Sprintf("leave must not exceed %d days", calendar.MaxRangeDays),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Range returns the normalized request range. Call Validate first.
func (r *ApplyLeaveRequest) Range() (calendar.DateRange, error) {
	from, err := calendar.ParseDate(r.FromDate)
	if err != nil {
		return calendar.DateRange{}, err
	}
	to, err := calendar.ParseDate(r.ToDate)
	if err != nil {
		return calendar.DateRange{}, err
	}
	return calendar.NewDateRange(from, to)
}

type ApplyLeaveResponse struct {
	Message              string   `json:"message"`
	RequestID            string   `json:"request_id"`
	ChargeableDays       int      `json:"chargeable_days"`
	WorkingDays          []string `json:"working_days"`
	HolidaysLeft         int      `json:"holidays_left"`
	OptionalHolidaysLeft int      `json:"optional_holidays_left"`
}

type DecisionRequest struct {
	RequestID string `json:"request_id" validate:"required"`
	Decision  string `json:"decision" validate:"required"`
}

func (r *DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	} else if !validator.IsValidUUID(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DecisionResponse struct {
	Message string `json:"message"`
}

// CancelLeaveRequest identifies the request to cancel. LeaveType and Status
// are accepted for older clients; the stored values are authoritative.
type CancelLeaveRequest struct {
	ID        string `json:"id" validate:"required"`
	LeaveType string `json:"leave_type,omitempty"`
	Status    string `json:"status,omitempty"`
}

func (r *CancelLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	} else if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveLimitsResponse struct {
	AllowedStandard int `json:"allowed_standard"`
	AllowedOptional int `json:"allowed_optional"`
	StandardTaken   int `json:"standard_taken"`
	OptionalTaken   int `json:"optional_taken"`
	LeaveBalance    int `json:"leave_balance"`
}

func NewLeaveLimitsResponse(q LeaveQuota) LeaveLimitsResponse {
	return LeaveLimitsResponse{
		AllowedStandard: q.AllowedStandard,
		AllowedOptional: q.AllowedOptional,
		StandardTaken:   q.StandardTaken,
		OptionalTaken:   q.OptionalTaken,
		LeaveBalance:    q.Balance(),
	}
}

type LeaveTypeResponse struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type LeaveRequestResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName *string   `json:"employee_name,omitempty"`
	CompanyID    string    `json:"company_id"`
	LeaveType    string    `json:"leave_type"`
	FromDate     string    `json:"from_date"`
	ToDate       string    `json:"to_date"`
	Reason       string    `json:"reason"`
	NumDays      int       `json:"num_days"`
	Status       string    `json:"status"`
	AppliedAt    time.Time `json:"applied_at"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		CompanyID:    r.CompanyID,
		LeaveType:    r.Category.String(),
		FromDate:     calendar.FormatDate(r.Range.From),
		ToDate:       calendar.FormatDate(r.Range.To),
		Reason:       r.Reason,
		NumDays:      r.ChargeableDays,
		Status:       string(r.Status),
		AppliedAt:    r.AppliedAt,
	}
}

type UpcomingEventResponse struct {
	Date  string `json:"date"`
	Title string `json:"title"`
}
