package attendance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the presence marker recorded on an attendance event.
type Status string

const (
	StatusPresent   Status = "Present"
	StatusLate      Status = "Late"
	StatusAbsent    Status = "Absent"
	StatusHalfDay   Status = "Half Day"
	StatusOnLeave   Status = "On Leave"
	StatusLoggedIn  Status = "Logged In"  // legacy punch-clock marker
	StatusLoggedOut Status = "Logged Out" // legacy punch-clock marker
)

// IsPresence reports whether the status counts as a day present.
// Unmarked events count as present: a punch record is proof of presence.
func (s Status) IsPresence() bool {
	switch s {
	case StatusPresent, StatusLate, StatusLoggedIn, StatusLoggedOut, "":
		return true
	default:
		return false
	}
}

// Event is a single attendance record. Date is kept as the raw stored value
// (calendar date or ISO-8601 timestamp) and is parsed by the aggregator.
type Event struct {
	ID             string          `json:"id,omitempty"`
	EmployeeID     string          `json:"employee_id,omitempty"`
	Date           string          `json:"date"`
	Status         Status          `json:"status,omitempty"`
	LoginTime      *time.Time      `json:"login_time,omitempty"`
	LogoutTime     *time.Time      `json:"logout_time,omitempty"`
	LoginLocation  string          `json:"login_location,omitempty"`
	LogoutLocation string          `json:"logout_location,omitempty"`
	LateMinutes    int             `json:"late_minutes,omitempty"`
	PenaltyAmount  decimal.Decimal `json:"late_penalty_amount"`
	WorkingHours   decimal.Decimal `json:"total_working_hours"`
	OvertimeHours  decimal.Decimal `json:"overtime_hours"`
	CreatedAt      time.Time       `json:"created_at,omitempty"`
	UpdatedAt      time.Time       `json:"updated_at,omitempty"`
}

// IsOpen reports whether the employee has logged in but not out.
func (e Event) IsOpen() bool {
	return e.LoginTime != nil && e.LogoutTime == nil
}

// ParseWarning describes an event that was excluded because its date could not be parsed.
type ParseWarning struct {
	Index int    `json:"index"`
	Date  string `json:"date"`
	Err   error  `json:"-"`
}

func (w ParseWarning) Error() string {
	return fmt.Sprintf("attendance record %d: unparseable date %q: %v", w.Index, w.Date, w.Err)
}

func (w ParseWarning) Unwrap() error {
	return ErrMalformedAttendanceRecord
}

// Late penalty categories.
const (
	CategoryOnTime      = "On Time"
	CategoryGracePeriod = "Grace Period"
	CategoryMinorLate   = "Minor Late"
	CategoryMajorLate   = "Major Late"
	CategorySevereLate  = "Severe Late"
)

// PenaltyTier is an inclusive [MinMinutes, MaxMinutes] delay band.
// MaxMinutes < 0 means the tier is open-ended.
type PenaltyTier struct {
	Category   string          `json:"category"`
	MinMinutes int             `json:"min_minutes"`
	MaxMinutes int             `json:"max_minutes"`
	Amount     decimal.Decimal `json:"penalty_amount"`
}

func (t PenaltyTier) Contains(delay int) bool {
	return delay >= t.MinMinutes && (t.MaxMinutes < 0 || delay <= t.MaxMinutes)
}

// PenaltyPolicy is the company's late-login penalty structure.
type PenaltyPolicy struct {
	Tiers                []PenaltyTier   `json:"tiers"`
	MonthlyLateLimit     int             `json:"monthly_late_limit"`
	MonthlyExcessPenalty decimal.Decimal `json:"monthly_excess_penalty"`
}

// DefaultPenaltyPolicy returns the standard late-login penalty structure.
func DefaultPenaltyPolicy() PenaltyPolicy {
	return PenaltyPolicy{
		Tiers: []PenaltyTier{
			{Category: CategoryGracePeriod, MinMinutes: 0, MaxMinutes: 15, Amount: decimal.Zero},
			{Category: CategoryMinorLate, MinMinutes: 16, MaxMinutes: 30, Amount: decimal.NewFromInt(200)},
			{Category: CategoryMajorLate, MinMinutes: 31, MaxMinutes: 60, Amount: decimal.NewFromInt(500)},
			{Category: CategorySevereLate, MinMinutes: 61, MaxMinutes: -1, Amount: decimal.NewFromInt(1000)},
		},
		MonthlyLateLimit:     3,
		MonthlyExcessPenalty: decimal.NewFromInt(1500),
	}
}

// LatePenaltyResult is the outcome of classifying one login.
type LatePenaltyResult struct {
	DelayMinutes      int             `json:"delay_minutes"`
	Category          string          `json:"category"`
	PenaltyAmount     decimal.Decimal `json:"penalty_amount"`
	AdditionalPenalty decimal.Decimal `json:"additional_penalty"`
	TotalPenalty      decimal.Decimal `json:"total_penalty"`
}

// IsLate reports whether the login counts as a late arrival.
func (r LatePenaltyResult) IsLate() bool {
	return r.DelayMinutes > 0
}

// MonthlyReport summarises one employee's attendance for a month.
type MonthlyReport struct {
	EmployeeID           string          `json:"employee_id"`
	Year                 int             `json:"year"`
	Month                int             `json:"month"`
	MonthName            string          `json:"month_name"`
	TotalWorkingDays     int             `json:"total_working_days"`
	PresentDays          int             `json:"present_days"`
	AbsentDays           int             `json:"absent_days"`
	LateDays             int             `json:"late_days"`
	OnLeaveDays          int             `json:"on_leave_days"`
	TotalLateMinutes     int             `json:"total_late_minutes"`
	TotalPenaltyAmount   decimal.Decimal `json:"total_penalty_amount"`
	OvertimeHours        decimal.Decimal `json:"overtime_hours"`
	AttendancePercentage decimal.Decimal `json:"attendance_percentage"`
	PunctualityScore     decimal.Decimal `json:"punctuality_score"`
	Records              []Event         `json:"detailed_records"`
	Warnings             []string        `json:"warnings,omitempty"`
}
