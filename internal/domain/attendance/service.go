package attendance

import (
	"context"
)

// AttendanceService defines business logic for the punch clock and attendance reporting
type AttendanceService interface {
	// ClockIn records today's login and classifies lateness
	ClockIn(ctx context.Context, req ClockInRequest) (ClockInResponse, error)

	// ClockOut closes today's login and computes working hours
	ClockOut(ctx context.Context, req ClockOutRequest) (ClockOutResponse, error)

	// MonthlyReport builds the attendance report for one employee and month
	MonthlyReport(ctx context.Context, employeeID string, year, month int) (MonthlyReport, error)

	// ClassifyLatePenalty runs the late penalty classifier on caller-supplied times
	ClassifyLatePenalty(ctx context.Context, req LatePenaltyRequest) (LatePenaltyResult, error)
}
