package attendance

import "errors"

// Attendance domain errors
var (
	ErrInvalidDate = errors.New("date must use the YYYY-MM-DD format")
)
