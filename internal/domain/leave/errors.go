package leave

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrQuotaNotFound                = errors.New("leave limits not set for user")
	ErrQuotaExceeded                = errors.New("leave exceeds allowed quota")
	ErrNoChargeableDays             = errors.New("leave cannot be applied only for holidays or weekends")
	ErrOptionalLeaveOutsideHoliday  = errors.New("optional leave can only be applied on optional holidays")
	ErrOverlappingRequest           = errors.New("leave already applied for this duration")
	ErrInvalidDecision              = errors.New("invalid decision")
	ErrInvalidCategory              = errors.New("invalid leave type")
)

// QuotaExceededError carries the remaining quota for display.
type QuotaExceededError struct {
	StandardLeft int
	OptionalLeft int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%s (standard left: %d, optional left: %d)", ErrQuotaExceeded, e.StandardLeft, e.OptionalLeft)
}

func (e *QuotaExceededError) Unwrap() error {
	return ErrQuotaExceeded
}

// OptionalLeaveOutsideHolidayError lists the optional holiday dates the
// employee could apply for instead.
type OptionalLeaveOutsideHolidayError struct {
	AllowedDates []time.Time
}

func (e *OptionalLeaveOutsideHolidayError) Error() string {
	return ErrOptionalLeaveOutsideHoliday.Error()
}

func (e *OptionalLeaveOutsideHolidayError) Unwrap() error {
	return ErrOptionalLeaveOutsideHoliday
}
