package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type EmploymentStatus string

const (
	StatusActive   EmploymentStatus = "active"
	StatusInactive EmploymentStatus = "inactive"
)

// Employee is the persisted employee master record as seen by payroll.
type Employee struct {
	ID          string
	EmployeeID  string // HR code, e.g. "EMP001"
	FullName    string
	Department  string
	Designation string
	BasicSalary decimal.Decimal
	IsMetroCity *bool // nil falls back to the payroll default
	State       string
	Status      EmploymentStatus
	JoiningDate *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}
