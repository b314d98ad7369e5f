package payroll

import (
	"github.com/cmlabs-hris/hrms-payroll/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// AggregateAnnual sums monthly results. The breakdown keeps the input order.
func AggregateAnnual(results []payroll.SalaryCalculationResult) payroll.AnnualSalarySummary {
	summary := payroll.AnnualSalarySummary{
		AnnualGrossSalary: decimal.Zero,
		AnnualDeductions:  decimal.Zero,
		AnnualNetSalary:   decimal.Zero,
		MonthlyBreakdown:  make([]payroll.SalaryCalculationResult, len(results)),
	}
	copy(summary.MonthlyBreakdown, results)

	for _, r := range results {
		summary.AnnualGrossSalary = summary.AnnualGrossSalary.Add(r.Earnings.GrossSalary)
		summary.AnnualDeductions = summary.AnnualDeductions.Add(r.Deductions.TotalDeductions)
		summary.AnnualNetSalary = summary.AnnualNetSalary.Add(r.NetSalary)
		summary.TotalPresentDays += r.AttendanceSummary.PresentDays
		summary.TotalWorkingDays += r.AttendanceSummary.TotalWorkingDays
	}

	summary.AnnualGrossSalary = summary.AnnualGrossSalary.Round(2)
	summary.AnnualDeductions = summary.AnnualDeductions.Round(2)
	summary.AnnualNetSalary = summary.AnnualNetSalary.Round(2)
	summary.AnnualAttendancePercentage = payroll.Percentage(summary.TotalPresentDays, summary.TotalWorkingDays)

	return summary
}
