package attendance

import (
	"time"

	"github.com/cmlabs-hris/hrms-payroll/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// LatePenaltyClassifier maps a login delay onto the company's penalty tiers.
type LatePenaltyClassifier struct {
	policy attendance.PenaltyPolicy
}

func NewLatePenaltyClassifier(policy attendance.PenaltyPolicy) *LatePenaltyClassifier {
	return &LatePenaltyClassifier{policy: policy}
}

func (c *LatePenaltyClassifier) Policy() attendance.PenaltyPolicy {
	return c.policy
}

// DelayMinutes is max(0, actual - scheduled) compared by minute of day.
// Seconds are ignored.
func DelayMinutes(scheduled, actual time.Time) int {
	delay := minuteOfDay(actual) - minuteOfDay(scheduled)
	if delay < 0 {
		return 0
	}
	return delay
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Classify categorises a single login.
func (c *LatePenaltyClassifier) Classify(scheduled, actual time.Time) attendance.LatePenaltyResult {
	return c.ClassifyDelay(DelayMinutes(scheduled, actual))
}

// ClassifyMonthly classifies a login and adds the monthly excess surcharge when
// the employee's late count for the month is over the limit.
func (c *LatePenaltyClassifier) ClassifyMonthly(scheduled, actual time.Time, monthlyLateCount int) attendance.LatePenaltyResult {
	result := c.Classify(scheduled, actual)
	if monthlyLateCount > c.policy.MonthlyLateLimit {
		result.AdditionalPenalty = c.policy.MonthlyExcessPenalty
		result.TotalPenalty = result.PenaltyAmount.Add(result.AdditionalPenalty)
	}
	return result
}

// ClassifyDelay categorises a delay already expressed in minutes.
func (c *LatePenaltyClassifier) ClassifyDelay(delay int) attendance.LatePenaltyResult {
	result := attendance.LatePenaltyResult{
		DelayMinutes:      delay,
		Category:          attendance.CategoryOnTime,
		PenaltyAmount:     decimal.Zero,
		AdditionalPenalty: decimal.Zero,
		TotalPenalty:      decimal.Zero,
	}
	if delay <= 0 {
		result.DelayMinutes = 0
		return result
	}

	for _, tier := range c.policy.Tiers {
		if tier.Contains(delay) {
			result.Category = tier.Category
			result.PenaltyAmount = tier.Amount
			result.TotalPenalty = tier.Amount
			break
		}
	}
	return result
}
