package attendance

import (
	"time"

	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ClockInRequest struct {
	EmployeeID string `json:"employee_id"`
	Location   string `json:"location,omitempty"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	} else if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "has an invalid format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClockOutRequest struct {
	EmployeeID string `json:"employee_id"`
	Location   string `json:"location,omitempty"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	} else if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "has an invalid format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClockInResponse struct {
	EmployeeID  string            `json:"employee_id"`
	Date        string            `json:"date"`
	LoginTime   time.Time         `json:"login_time"`
	Status      Status            `json:"status"`
	LatePenalty LatePenaltyResult `json:"late_penalty"`
}

type ClockOutResponse struct {
	EmployeeID    string          `json:"employee_id"`
	Date          string          `json:"date"`
	LogoutTime    time.Time       `json:"logout_time"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
}

// LatePenaltyRequest classifies a login without touching stored attendance.
// ActualTime accepts "HH:MM" or an RFC3339 timestamp.
type LatePenaltyRequest struct {
	ScheduledTime    string `json:"scheduled_time"`
	ActualTime       string `json:"actual_time"`
	MonthlyLateCount int    `json:"monthly_late_count"`
}

func (r *LatePenaltyRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidClock(r.ScheduledTime) {
		errs = append(errs, validator.ValidationError{Field: "scheduled_time", Message: "must be HH:MM"})
	}
	if !validator.IsValidClock(r.ActualTime) {
		if _, ok := validator.IsValidDateTime(r.ActualTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "actual_time", Message: "must be HH:MM or an ISO8601 timestamp"})
		}
	}
	if r.MonthlyLateCount < 0 {
		errs = append(errs, validator.ValidationError{Field: "monthly_late_count", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
