package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeSalaryProfile is the contract salary input to the engine.
type EmployeeSalaryProfile struct {
	BasicSalary decimal.Decimal
	IsMetroCity bool
	State       string
}

// EmployeeIdentity is the employee metadata printed on salary documents.
type EmployeeIdentity struct {
	EmployeeID       string `json:"employee_id"`
	FullName         string `json:"employee_name"`
	Department       string `json:"department"`
	Designation      string `json:"designation"`
	CalculationMonth string `json:"calculation_month"`
}

// AllowanceOverride replaces the default monthly allowances when set.
type AllowanceOverride struct {
	Medical   *decimal.Decimal `json:"medical,omitempty"`
	Transport *decimal.Decimal `json:"transport,omitempty"`
	Special   *decimal.Decimal `json:"special,omitempty"`
}

// AttendanceRatio is present days over total working days.
type AttendanceRatio struct {
	Present int
	Total   int
}

// Apply pro-rates amount by the ratio, multiplying before dividing.
// A zero denominator yields zero.
func (r AttendanceRatio) Apply(amount decimal.Decimal) decimal.Decimal {
	if r.Total <= 0 {
		return decimal.Zero
	}
	return amount.Mul(decimal.NewFromInt(int64(r.Present))).Div(decimal.NewFromInt(int64(r.Total)))
}

// AttendanceSummary is the attendance block of a salary calculation.
type AttendanceSummary struct {
	PresentDays          int             `json:"present_days"`
	TotalWorkingDays     int             `json:"total_working_days"`
	AttendancePercentage decimal.Decimal `json:"attendance_percentage"`
}

// NewAttendanceSummary builds the summary; the percentage is 0 when total is 0.
func NewAttendanceSummary(present, total int) AttendanceSummary {
	return AttendanceSummary{
		PresentDays:          present,
		TotalWorkingDays:     total,
		AttendancePercentage: Percentage(present, total),
	}
}

func (s AttendanceSummary) Ratio() AttendanceRatio {
	return AttendanceRatio{Present: s.PresentDays, Total: s.TotalWorkingDays}
}

// Percentage returns part/whole*100 rounded to 2 places, or 0 when whole is 0.
func Percentage(part, whole int) decimal.Decimal {
	if whole <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(whole))).
		Round(2)
}

type EarningsBreakdown struct {
	Basic              decimal.Decimal `json:"basic_salary"`
	HRA                decimal.Decimal `json:"hra"`
	DA                 decimal.Decimal `json:"da"`
	MedicalAllowance   decimal.Decimal `json:"medical_allowance"`
	TransportAllowance decimal.Decimal `json:"transport_allowance"`
	SpecialAllowance   decimal.Decimal `json:"special_allowance"`
	GrossSalary        decimal.Decimal `json:"gross_salary"`
}

type DeductionsBreakdown struct {
	PFEmployee      decimal.Decimal `json:"pf_employee"`
	PFEmployer      decimal.Decimal `json:"pf_employer"`
	ESIEmployee     decimal.Decimal `json:"esi_employee"`
	ESIEmployer     decimal.Decimal `json:"esi_employer"`
	ProfessionalTax decimal.Decimal `json:"professional_tax"`
	IncomeTax       decimal.Decimal `json:"income_tax"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
}

type EmployerContributions struct {
	PFEmployer                decimal.Decimal `json:"pf_employer"`
	ESIEmployer               decimal.Decimal `json:"esi_employer"`
	TotalEmployerContribution decimal.Decimal `json:"total_employer_contribution"`
}

// SalaryCalculationResult is the complete pay breakdown for one employee and month.
// It is built once and handed read-only to the payslip renderer and the store.
type SalaryCalculationResult struct {
	EmployeeInfo          EmployeeIdentity      `json:"employee_info"`
	Year                  int                   `json:"year"`
	Month                 int                   `json:"month"`
	AttendanceSummary     AttendanceSummary     `json:"employee_details"`
	Earnings              EarningsBreakdown     `json:"earnings"`
	Deductions            DeductionsBreakdown   `json:"deductions"`
	NetSalary             decimal.Decimal       `json:"net_salary"`
	EmployerContributions EmployerContributions `json:"employer_contributions"`
	Warnings              []string              `json:"warnings,omitempty"`
}

// AnnualSalarySummary aggregates an ordered list of monthly results.
type AnnualSalarySummary struct {
	AnnualGrossSalary          decimal.Decimal           `json:"annual_gross_salary"`
	AnnualDeductions           decimal.Decimal           `json:"annual_deductions"`
	AnnualNetSalary            decimal.Decimal           `json:"annual_net_salary"`
	TotalPresentDays           int                       `json:"total_present_days"`
	TotalWorkingDays           int                       `json:"total_working_days"`
	AnnualAttendancePercentage decimal.Decimal           `json:"annual_attendance_percentage"`
	MonthlyBreakdown           []SalaryCalculationResult `json:"monthly_breakdown"`
}

// SalaryRecord is a persisted monthly calculation.
type SalaryRecord struct {
	ID              string
	EmployeeID      string
	PeriodYear      int
	PeriodMonth     int
	GrossSalary     decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal
	Result          SalaryCalculationResult
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RunFailure records an employee the batch run could not process.
type RunFailure struct {
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}

// PayrollRun is the outcome of a batch run over all active employees.
type PayrollRun struct {
	ID          string                    `json:"run_id"`
	PeriodYear  int                       `json:"period_year"`
	PeriodMonth int                       `json:"period_month"`
	Processed   int                       `json:"processed"`
	Failed      []RunFailure              `json:"failed"`
	Results     []SalaryCalculationResult `json:"results"`
	StartedAt   time.Time                 `json:"started_at"`
	FinishedAt  time.Time                 `json:"finished_at"`
}
