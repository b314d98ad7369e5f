package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-payroll/internal/domain/attendance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func clock(hour, minute int) time.Time {
	return time.Date(2024, time.February, 5, hour, minute, 0, 0, time.UTC)
}

// Test tier boundaries are inclusive on both ends
func TestLatePenaltyClassifier_ClassifyDelay_Boundaries(t *testing.T) {
	c := NewLatePenaltyClassifier(attendance.DefaultPenaltyPolicy())

	tests := []struct {
		delay    int
		category string
		penalty  int64
	}{
		{0, attendance.CategoryOnTime, 0},
		{1, attendance.CategoryGracePeriod, 0},
		{15, attendance.CategoryGracePeriod, 0},
		{16, attendance.CategoryMinorLate, 200},
		{30, attendance.CategoryMinorLate, 200},
		{31, attendance.CategoryMajorLate, 500},
		{60, attendance.CategoryMajorLate, 500},
		{61, attendance.CategorySevereLate, 1000},
		{240, attendance.CategorySevereLate, 1000},
	}

	for _, tt := range tests {
		result := c.ClassifyDelay(tt.delay)
		assert.Equal(t, tt.category, result.Category, "delay %d", tt.delay)
		assert.True(t, decimal.NewFromInt(tt.penalty).Equal(result.PenaltyAmount), "delay %d: got %s", tt.delay, result.PenaltyAmount)
		assert.True(t, result.PenaltyAmount.Equal(result.TotalPenalty))
		assert.True(t, result.AdditionalPenalty.IsZero())
	}
}

// Test early logins clamp to zero delay
func TestLatePenaltyClassifier_Classify_Early(t *testing.T) {
	c := NewLatePenaltyClassifier(attendance.DefaultPenaltyPolicy())

	result := c.Classify(clock(9, 45), clock(9, 10))

	assert.Equal(t, 0, result.DelayMinutes)
	assert.Equal(t, attendance.CategoryOnTime, result.Category)
	assert.False(t, result.IsLate())
}

func TestLatePenaltyClassifier_Classify_UsesMinuteOfDay(t *testing.T) {
	c := NewLatePenaltyClassifier(attendance.DefaultPenaltyPolicy())

	actual := time.Date(2024, time.February, 5, 10, 1, 59, 0, time.UTC)
	result := c.Classify(clock(9, 45), actual)

	assert.Equal(t, 16, result.DelayMinutes)
	assert.Equal(t, attendance.CategoryMinorLate, result.Category)
}

// Test the monthly surcharge applies only above the limit
func TestLatePenaltyClassifier_ClassifyMonthly(t *testing.T) {
	c := NewLatePenaltyClassifier(attendance.DefaultPenaltyPolicy())

	atLimit := c.ClassifyMonthly(clock(9, 45), clock(10, 20), 3)
	assert.True(t, atLimit.AdditionalPenalty.IsZero())
	assert.Equal(t, "500", atLimit.TotalPenalty.String())

	over := c.ClassifyMonthly(clock(9, 45), clock(10, 20), 4)
	assert.Equal(t, "1500", over.AdditionalPenalty.String())
	assert.Equal(t, "2000", over.TotalPenalty.String())

	onTimeButOver := c.ClassifyMonthly(clock(9, 45), clock(9, 45), 5)
	assert.Equal(t, attendance.CategoryOnTime, onTimeButOver.Category)
	assert.Equal(t, "1500", onTimeButOver.TotalPenalty.String())
}

func TestLatePenaltyClassifier_CustomPolicy(t *testing.T) {
	c := NewLatePenaltyClassifier(attendance.PenaltyPolicy{
		Tiers: []attendance.PenaltyTier{
			{Category: "Late", MinMinutes: 1, MaxMinutes: -1, Amount: decimal.NewFromInt(50)},
		},
		MonthlyLateLimit:     1,
		MonthlyExcessPenalty: decimal.NewFromInt(10),
	})

	result := c.ClassifyMonthly(clock(9, 0), clock(9, 1), 2)

	assert.Equal(t, "Late", result.Category)
	assert.Equal(t, "60", result.TotalPenalty.String())
}
