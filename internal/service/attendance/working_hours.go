package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	lunchBreak         = 60 * time.Minute
	standardWorkingDay = 8
)

// WorkingHours returns the hours worked between login and logout less the
// lunch break, and the overtime beyond a standard day. Both are rounded to
// 2 places and never negative.
func WorkingHours(login, logout time.Time) (total, overtime decimal.Decimal) {
	worked := logout.Sub(login) - lunchBreak
	if worked < 0 {
		worked = 0
	}

	hours := decimal.NewFromInt(int64(worked / time.Second)).Div(decimal.NewFromInt(3600))
	extra := hours.Sub(decimal.NewFromInt(standardWorkingDay))
	if extra.IsNegative() {
		extra = decimal.Zero
	}
	return hours.Round(2), extra.Round(2)
}

// PunctualityScore is the share of working days without a late login, as a
// percentage. A month with no working days scores 100.
func PunctualityScore(workingDays, lateDays int) decimal.Decimal {
	if workingDays <= 0 {
		return decimal.NewFromInt(100)
	}
	onTime := workingDays - lateDays
	if onTime < 0 {
		onTime = 0
	}
	return decimal.NewFromInt(int64(onTime)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(workingDays))).
		Round(2)
}
