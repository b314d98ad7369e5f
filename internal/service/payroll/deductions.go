package payroll

import (
	"github.com/cmlabs-hris/hrms-payroll/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

type DeductionsCalculator struct {
	rates payroll.RateConfig
}

func NewDeductionsCalculator(rates payroll.RateConfig) *DeductionsCalculator {
	return &DeductionsCalculator{rates: rates}
}

// ComputeDeductions derives the statutory deductions from the pro-rated basic
// and gross salary of the month.
func (c *DeductionsCalculator) ComputeDeductions(proratedBasic, grossSalary decimal.Decimal) payroll.DeductionsBreakdown {
	pfEmployee, pfEmployer := c.ProvidentFund(proratedBasic)
	esiEmployee, esiEmployer := c.EmployeeStateInsurance(grossSalary)
	pt := c.ProfessionalTax(grossSalary)
	tds := c.MonthlyIncomeTax(grossSalary)

	return payroll.DeductionsBreakdown{
		PFEmployee:      pfEmployee,
		PFEmployer:      pfEmployer,
		ESIEmployee:     esiEmployee,
		ESIEmployer:     esiEmployer,
		ProfessionalTax: pt,
		IncomeTax:       tds,
		TotalDeductions: pfEmployee.Add(esiEmployee).Add(pt).Add(tds).Round(2),
	}
}

// ProvidentFund is PFRate of the basic capped at the PF wage limit, matched by
// the employer.
func (c *DeductionsCalculator) ProvidentFund(proratedBasic decimal.Decimal) (employee, employer decimal.Decimal) {
	eligible := decimal.Min(proratedBasic, c.rates.PFWageLimit)
	if eligible.IsNegative() {
		eligible = decimal.Zero
	}
	pf := eligible.Mul(c.rates.PFRate).Round(2)
	return pf, pf
}

// EmployeeStateInsurance applies only while gross is at or below the ESI wage limit.
func (c *DeductionsCalculator) EmployeeStateInsurance(grossSalary decimal.Decimal) (employee, employer decimal.Decimal) {
	if grossSalary.GreaterThan(c.rates.ESIWageLimit) {
		return decimal.Zero, decimal.Zero
	}
	return grossSalary.Mul(c.rates.ESIEmployeeRate).Round(2),
		grossSalary.Mul(c.rates.ESIEmployerRate).Round(2)
}

// ProfessionalTax returns the amount of the first band containing gross, or 0.
func (c *DeductionsCalculator) ProfessionalTax(grossSalary decimal.Decimal) decimal.Decimal {
	for _, band := range c.rates.ProfessionalTax {
		if band.Contains(grossSalary) {
			return band.Amount.Round(2)
		}
	}
	return decimal.Zero
}

// AnnualIncomeTax applies the slab table to an annual income.
func (c *DeductionsCalculator) AnnualIncomeTax(annual decimal.Decimal) decimal.Decimal {
	for _, slab := range c.rates.IncomeTaxSlabs {
		if !slab.Contains(annual) {
			continue
		}
		taxable := annual.Sub(slab.Floor)
		if taxable.IsNegative() {
			taxable = decimal.Zero
		}
		return slab.Base.Add(taxable.Mul(slab.Rate))
	}
	return decimal.Zero
}

// MonthlyIncomeTax annualises gross, taxes it and spreads the tax over 12 months.
func (c *DeductionsCalculator) MonthlyIncomeTax(grossSalary decimal.Decimal) decimal.Decimal {
	annual := grossSalary.Mul(monthsPerYear)
	return c.AnnualIncomeTax(annual).Div(monthsPerYear).Round(2)
}
