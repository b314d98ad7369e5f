package payroll

import (
	"github.com/cmlabs-hris/hrms-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/calendar"
)

// Assemble composes the final salary result. Net is gross less the employee
// deductions; employer PF and ESI are reported separately.
func Assemble(
	year, month int,
	summary payroll.AttendanceSummary,
	earnings payroll.EarningsBreakdown,
	deductions payroll.DeductionsBreakdown,
	identity payroll.EmployeeIdentity,
) payroll.SalaryCalculationResult {
	identity.CalculationMonth = calendar.Label(year, month)

	return payroll.SalaryCalculationResult{
		EmployeeInfo:      identity,
		Year:              year,
		Month:             month,
		AttendanceSummary: summary,
		Earnings:          earnings,
		Deductions:        deductions,
		NetSalary:         earnings.GrossSalary.Sub(deductions.TotalDeductions).Round(2),
		EmployerContributions: payroll.EmployerContributions{
			PFEmployer:                deductions.PFEmployer,
			ESIEmployer:               deductions.ESIEmployer,
			TotalEmployerContribution: deductions.PFEmployer.Add(deductions.ESIEmployer).Round(2),
		},
	}
}
