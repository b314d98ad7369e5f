package payroll

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultState is the state whose professional tax table applies when none is set.
const DefaultState = "Karnataka"

// PTBand is an inclusive professional tax band on monthly gross salary.
// A nil Max means the band has no upper bound.
type PTBand struct {
	Min    decimal.Decimal  `json:"min"`
	Max    *decimal.Decimal `json:"max,omitempty"`
	Amount decimal.Decimal  `json:"amount"`
}

// Contains reports whether gross falls inside [Min, Max].
func (b PTBand) Contains(gross decimal.Decimal) bool {
	if gross.LessThan(b.Min) {
		return false
	}
	return b.Max == nil || gross.LessThanOrEqual(*b.Max)
}

// TaxSlab taxes an annual income up to UpTo (nil: unbounded) as
// Base + Rate * (annual - Floor).
type TaxSlab struct {
	UpTo  *decimal.Decimal `json:"up_to,omitempty"`
	Floor decimal.Decimal  `json:"floor"`
	Base  decimal.Decimal  `json:"base"`
	Rate  decimal.Decimal  `json:"rate"`
}

// Contains reports whether annual income is within the slab's upper bound.
func (s TaxSlab) Contains(annual decimal.Decimal) bool {
	return s.UpTo == nil || annual.LessThanOrEqual(*s.UpTo)
}

// RateConfig holds every statutory and company rate the payroll engine uses.
// Values are passed into each calculator; nothing reads package-level rates.
type RateConfig struct {
	State string `json:"state"`

	PFRate      decimal.Decimal `json:"pf_rate"`
	PFWageLimit decimal.Decimal `json:"pf_wage_limit"`

	ESIEmployeeRate decimal.Decimal `json:"esi_employee_rate"`
	ESIEmployerRate decimal.Decimal `json:"esi_employer_rate"`
	ESIWageLimit    decimal.Decimal `json:"esi_wage_limit"`

	HRAMetroRate    decimal.Decimal `json:"hra_metro_rate"`
	HRANonMetroRate decimal.Decimal `json:"hra_non_metro_rate"`
	DARate          decimal.Decimal `json:"da_rate"`

	DefaultMedicalAllowance   decimal.Decimal `json:"default_medical_allowance"`
	DefaultTransportAllowance decimal.Decimal `json:"default_transport_allowance"`
	DefaultSpecialAllowance   decimal.Decimal `json:"default_special_allowance"`

	ProfessionalTax []PTBand  `json:"professional_tax"`
	IncomeTaxSlabs  []TaxSlab `json:"income_tax_slabs"`
}

// HRARate returns the HRA percentage for the employee's city class.
func (c RateConfig) HRARate(isMetro bool) decimal.Decimal {
	if isMetro {
		return c.HRAMetroRate
	}
	return c.HRANonMetroRate
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func pct(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func upTo(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// ptTables maps lower-cased state names to their professional tax bands.
var ptTables = map[string]func() []PTBand{
	"karnataka": func() []PTBand {
		return []PTBand{
			{Min: dec(0), Max: upTo(10000), Amount: dec(0)},
			{Min: dec(10001), Max: upTo(15000), Amount: dec(150)},
			{Min: dec(15001), Max: upTo(25000), Amount: dec(200)},
			{Min: dec(25001), Amount: dec(200)},
		}
	},
	"maharashtra": func() []PTBand {
		return []PTBand{
			{Min: dec(0), Max: upTo(7500), Amount: dec(0)},
			{Min: dec(7501), Max: upTo(10000), Amount: dec(175)},
			{Min: dec(10001), Amount: dec(200)},
		}
	},
}

func newRegimeSlabs() []TaxSlab {
	return []TaxSlab{
		{UpTo: upTo(300000), Floor: dec(0), Base: dec(0), Rate: dec(0)},
		{UpTo: upTo(600000), Floor: dec(300000), Base: dec(0), Rate: pct("0.05")},
		{UpTo: upTo(900000), Floor: dec(600000), Base: dec(15000), Rate: pct("0.10")},
		{UpTo: upTo(1200000), Floor: dec(900000), Base: dec(45000), Rate: pct("0.15")},
		{Floor: dec(1200000), Base: dec(90000), Rate: pct("0.20")},
	}
}

// DefaultRateConfig returns the Karnataka rate table.
func DefaultRateConfig() RateConfig {
	return RateConfig{
		State:                     DefaultState,
		PFRate:                    pct("0.12"),
		PFWageLimit:               dec(15000),
		ESIEmployeeRate:           pct("0.0175"),
		ESIEmployerRate:           pct("0.0475"),
		ESIWageLimit:              dec(21000),
		HRAMetroRate:              pct("0.50"),
		HRANonMetroRate:           pct("0.40"),
		DARate:                    pct("0.10"),
		DefaultMedicalAllowance:   dec(1250),
		DefaultTransportAllowance: dec(1600),
		DefaultSpecialAllowance:   decimal.Zero,
		ProfessionalTax:           ptTables["karnataka"](),
		IncomeTaxSlabs:            newRegimeSlabs(),
	}
}

// SupportsState reports whether a professional tax table exists for state.
func SupportsState(state string) bool {
	_, ok := ptTables[strings.ToLower(strings.TrimSpace(state))]
	return ok
}

// RateConfigForState returns the default rates with the state's professional tax
// table. Unknown or empty states fall back to the Karnataka table.
func RateConfigForState(state string) RateConfig {
	cfg := DefaultRateConfig()
	table, ok := ptTables[strings.ToLower(strings.TrimSpace(state))]
	if !ok {
		return cfg
	}
	cfg.State = strings.TrimSpace(state)
	cfg.ProfessionalTax = table()
	return cfg
}
