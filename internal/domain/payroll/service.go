package payroll

import (
	"context"
	"io"
)

// PayrollService defines business logic for salary calculation and payroll runs
type PayrollService interface {
	// CalculateSalary computes and stores one employee's salary for a month
	CalculateSalary(ctx context.Context, req CalculateSalaryRequest) (SalaryCalculationResult, error)

	// GetAnnualSummary aggregates the employee's stored monthly results for a year
	GetAnnualSummary(ctx context.Context, employeeID string, year int) (AnnualSalarySummary, error)

	// RunPayroll calculates salaries for every active employee
	RunPayroll(ctx context.Context, req RunPayrollRequest) (PayrollRun, error)

	// GenerateSalarySlip calculates the salary and renders it as a PDF
	GenerateSalarySlip(ctx context.Context, req GenerateSalarySlipRequest) (SalarySlipResponse, error)

	GetWorkingDays(ctx context.Context, year, month int) (WorkingDaysResponse, error)

	GetAttendanceSummary(ctx context.Context, employeeID string, year, month int) (AttendanceSummaryResponse, error)

	GetRates(ctx context.Context) RateConfig
}

// PayslipRenderer writes a salary slip document for a calculated result.
type PayslipRenderer interface {
	Render(w io.Writer, result SalaryCalculationResult) error
}
