package attendance

import "context"

// AttendanceRepository defines data access methods for attendance events.
type AttendanceRepository interface {
	// Create stores a new login event
	Create(ctx context.Context, event Event) (Event, error)

	// GetByEmployeeAndDate returns ErrAttendanceNotFound when the employee has no record on date ("YYYY-MM-DD")
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (Event, error)

	// CloseSession records the logout half of an event
	CloseSession(ctx context.Context, event Event) error

	// ListByEmployee returns every stored event for the employee, newest first
	ListByEmployee(ctx context.Context, employeeID string) ([]Event, error)

	// CountLateInMonth counts the employee's late logins in the month
	CountLateInMonth(ctx context.Context, employeeID string, year, month int) (int, error)
}
