package payroll

import (
	"github.com/cmlabs-hris/hrms-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== CALCULATION DTOs ==========

// CalculateSalaryRequest asks for one employee's salary for a month.
// Zero Year/Month mean the current month. When Attendance is nil the stored
// attendance is used; an empty non-nil slice means no attendance at all.
type CalculateSalaryRequest struct {
	EmployeeID  string             `json:"-"`
	Year        int                `json:"year,omitempty"`
	Month       int                `json:"month,omitempty"`
	IsMetroCity *bool              `json:"is_metro_city,omitempty"`
	Allowances  *AllowanceOverride `json:"allowances,omitempty"`
	Attendance  []attendance.Event `json:"attendance,omitempty"`
}

func (r *CalculateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	} else if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "has an invalid format"})
	}
	if r.Year != 0 || r.Month != 0 {
		if !validator.IsValidPeriod(r.Year, r.Month) {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "year and month must form a valid period"})
		}
	}
	if r.Allowances != nil {
		errs = append(errs, validateAllowance("allowances.medical", r.Allowances.Medical)...)
		errs = append(errs, validateAllowance("allowances.transport", r.Allowances.Transport)...)
		errs = append(errs, validateAllowance("allowances.special", r.Allowances.Special)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateAllowance(field string, v *decimal.Decimal) validator.ValidationErrors {
	if v != nil && v.IsNegative() {
		return validator.ValidationErrors{{Field: field, Message: "must be non-negative"}}
	}
	return nil
}

type GenerateSalarySlipRequest struct {
	EmployeeID string `json:"-"`
	Year       int    `json:"year,omitempty"`
	Month      int    `json:"month,omitempty"`
}

func (r *GenerateSalarySlipRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "has an invalid format"})
	}
	if (r.Year != 0 || r.Month != 0) && !validator.IsValidPeriod(r.Year, r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "year and month must form a valid period"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SalarySlipResponse struct {
	EmployeeID string                  `json:"employee_id"`
	FileName   string                  `json:"filename"`
	PDFBase64  string                  `json:"pdf_data"`
	URL        string                  `json:"url,omitempty"`
	Salary     SalaryCalculationResult `json:"salary"`
}

// ========== RUN DTOs ==========

type RunPayrollRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *RunPayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPeriod(r.Year, r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "year and month must form a valid period"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== LOOKUP DTOs ==========

type WorkingDaysResponse struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	MonthName   string `json:"month_name"`
	WorkingDays int    `json:"working_days"`
}

type AttendanceSummaryResponse struct {
	EmployeeID           string          `json:"employee_id"`
	Year                 int             `json:"year"`
	Month                int             `json:"month"`
	PresentDays          int             `json:"present_days"`
	TotalWorkingDays     int             `json:"total_working_days"`
	AbsentDays           int             `json:"absent_days"`
	AttendancePercentage decimal.Decimal `json:"attendance_percentage"`
	Warnings             []string        `json:"warnings,omitempty"`
}
