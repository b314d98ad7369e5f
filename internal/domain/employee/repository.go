package employee

import "context"

type EmployeeRepository interface {
	// GetByEmployeeID looks an employee up by HR code
	GetByEmployeeID(ctx context.Context, employeeID string) (Employee, error)

	// ListActive returns all active employees ordered by HR code
	ListActive(ctx context.Context) ([]Employee, error)
}
