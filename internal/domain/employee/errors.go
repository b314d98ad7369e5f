package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmployeeInactive    = errors.New("employee is inactive")
	ErrNegativeBasicSalary = errors.New("basic salary must be non-negative")
)
