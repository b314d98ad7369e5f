package attendance

import "errors"

// Attendance domain errors
var (
	// Punch clock errors
	ErrAlreadyCheckedIn  = errors.New("employee already logged in today")
	ErrNotCheckedIn      = errors.New("no active login found for today")
	ErrAlreadyCheckedOut = errors.New("employee already logged out today")

	// Aggregation errors
	ErrMalformedAttendanceRecord = errors.New("malformed attendance record")

	ErrAttendanceNotFound = errors.New("attendance record not found")
)
