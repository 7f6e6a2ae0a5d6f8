package calendar

import "errors"

var (
	ErrInvalidDateRange    = errors.New("from date must not be after to date")
	ErrWorkingDaysNotFound = errors.New("no working days data found")
	ErrHolidayNameRequired = errors.New("holiday name is required")
	ErrInvalidMonth        = errors.New("month must be between 1 and 12")
)
