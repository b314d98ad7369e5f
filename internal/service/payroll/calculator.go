package payroll

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hrms-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-payroll/internal/domain/payroll"
	attendancesvc "github.com/cmlabs-hris/hrms-payroll/internal/service/attendance"
)

// CalculationInput is everything the engine needs for one employee and month.
// Attendance is treated as a read-only snapshot.
type CalculationInput struct {
	Identity   payroll.EmployeeIdentity
	Profile    payroll.EmployeeSalaryProfile
	Year       int
	Month      int
	Attendance []attendance.Event
	Allowances *payroll.AllowanceOverride
}

// SalaryCalculator runs the full pipeline: working days, attendance, earnings,
// deductions and assembly. It holds no mutable state and is safe for
// concurrent use.
type SalaryCalculator struct {
	rates  payroll.RateConfig
	strict bool
}

// NewSalaryCalculator builds a calculator. With strict set, an attendance
// record with an unparseable date fails the calculation instead of being
// skipped with a warning.
func NewSalaryCalculator(rates payroll.RateConfig, strict bool) *SalaryCalculator {
	return &SalaryCalculator{rates: rates, strict: strict}
}

func (c *SalaryCalculator) Rates() payroll.RateConfig {
	return c.rates
}

// ratesFor swaps in the professional tax table of the employee's state when
// one is known.
func (c *SalaryCalculator) ratesFor(state string) payroll.RateConfig {
	state = strings.TrimSpace(state)
	if state == "" || strings.EqualFold(state, c.rates.State) || !payroll.SupportsState(state) {
		return c.rates
	}
	rates := c.rates
	rates.State = state
	rates.ProfessionalTax = payroll.RateConfigForState(state).ProfessionalTax
	return rates
}

func (c *SalaryCalculator) Calculate(in CalculationInput) (payroll.SalaryCalculationResult, error) {
	if in.Profile.BasicSalary.IsNegative() {
		return payroll.SalaryCalculationResult{}, employee.ErrNegativeBasicSalary
	}

	totalDays, err := WorkingDays(in.Year, in.Month)
	if err != nil {
		return payroll.SalaryCalculationResult{}, err
	}

	present, warnings := attendancesvc.PresentDays(in.Attendance, in.Year, in.Month)
	if len(warnings) > 0 {
		if c.strict {
			return payroll.SalaryCalculationResult{}, fmt.Errorf("employee %s: %w", in.Identity.EmployeeID, warnings[0])
		}
		for _, w := range warnings {
			slog.Warn("Skipping malformed attendance record",
				"employee_id", in.Identity.EmployeeID,
				"index", w.Index,
				"date", w.Date,
				"error", w.Err,
			)
		}
	}

	summary := payroll.NewAttendanceSummary(present, totalDays)
	rates := c.ratesFor(in.Profile.State)

	earnings := NewEarningsCalculator(rates).ComputeEarnings(
		in.Profile.BasicSalary,
		summary.Ratio(),
		in.Profile.IsMetroCity,
		in.Allowances,
	)
	deductions := NewDeductionsCalculator(rates).ComputeDeductions(earnings.Basic, earnings.GrossSalary)

	result := Assemble(in.Year, in.Month, summary, earnings, deductions, in.Identity)
	result.Warnings = attendancesvc.WarningMessages(warnings)
	return result, nil
}
