package payroll

import (
	"github.com/cmlabs-hris/hrms-payroll/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type EarningsCalculator struct {
	rates payroll.RateConfig
}

func NewEarningsCalculator(rates payroll.RateConfig) *EarningsCalculator {
	return &EarningsCalculator{rates: rates}
}

// ComputeEarnings pro-rates every component by the attendance ratio. Each
// component is rounded to 2 places on its own and gross is the sum of the
// rounded components, so printed line items always add up to gross.
func (c *EarningsCalculator) ComputeEarnings(
	basicSalary decimal.Decimal,
	ratio payroll.AttendanceRatio,
	isMetro bool,
	override *payroll.AllowanceOverride,
) payroll.EarningsBreakdown {
	medical := c.rates.DefaultMedicalAllowance
	transport := c.rates.DefaultTransportAllowance
	special := c.rates.DefaultSpecialAllowance
	if override != nil {
		if override.Medical != nil {
			medical = *override.Medical
		}
		if override.Transport != nil {
			transport = *override.Transport
		}
		if override.Special != nil {
			special = *override.Special
		}
	}

	proratedBasic := ratio.Apply(basicSalary)

	e := payroll.EarningsBreakdown{
		Basic:              proratedBasic.Round(2),
		HRA:                proratedBasic.Mul(c.rates.HRARate(isMetro)).Round(2),
		DA:                 proratedBasic.Mul(c.rates.DARate).Round(2),
		MedicalAllowance:   ratio.Apply(medical).Round(2),
		TransportAllowance: ratio.Apply(transport).Round(2),
		SpecialAllowance:   ratio.Apply(special).Round(2),
	}
	e.GrossSalary = e.Basic.
		Add(e.HRA).
		Add(e.DA).
		Add(e.MedicalAllowance).
		Add(e.TransportAllowance).
		Add(e.SpecialAllowance)

	return e
}
