package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/hrms-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/calendar"
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// DefaultScheduledLogin is the office start time used when none is configured.
const DefaultScheduledLogin = "09:45"

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	classifier *LatePenaltyClassifier

	loginHour   int
	loginMinute int
	loc         *time.Location
	now         func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	classifier *LatePenaltyClassifier,
	scheduledLogin string,
	loc *time.Location,
) attendance.AttendanceService {
	hour, minute, err := validator.ParseClock(scheduledLogin)
	if err != nil {
		slog.Warn("Invalid scheduled login, using default", "scheduled_login", scheduledLogin, "default", DefaultScheduledLogin)
		hour, minute, _ = validator.ParseClock(DefaultScheduledLogin)
	}
	if loc == nil {
		loc = time.UTC
	}

	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		classifier:           classifier,
		loginHour:            hour,
		loginMinute:          minute,
		loc:                  loc,
		now:                  time.Now,
	}
}

func (a *AttendanceServiceImpl) scheduledLoginOn(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), a.loginHour, a.loginMinute, 0, 0, a.loc)
}

func (a *AttendanceServiceImpl) activeEmployee(ctx context.Context, employeeID string) (employee.Employee, error) {
	emp, err := a.EmployeeRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive() {
		return employee.Employee{}, employee.ErrEmployeeInactive
	}
	return emp, nil
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.ClockInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockInResponse{}, err
	}
	if _, err := a.activeEmployee(ctx, req.EmployeeID); err != nil {
		return attendance.ClockInResponse{}, err
	}

	now := a.now().In(a.loc)
	date := now.Format("2006-01-02")

	_, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err == nil {
		return attendance.ClockInResponse{}, attendance.ErrAlreadyCheckedIn
	}
	if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.ClockInResponse{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}

	scheduled := a.scheduledLoginOn(now)
	lateCount, err := a.AttendanceRepository.CountLateInMonth(ctx, req.EmployeeID, now.Year(), int(now.Month()))
	if err != nil {
		return attendance.ClockInResponse{}, fmt.Errorf("failed to count late logins: %w", err)
	}
	// Today's login counts toward the monthly total when it is itself late.
	if DelayMinutes(scheduled, now) > 0 {
		lateCount++
	}
	penalty := a.classifier.ClassifyMonthly(scheduled, now, lateCount)

	status := attendance.StatusPresent
	if penalty.IsLate() {
		status = attendance.StatusLate
	}

	created, err := a.AttendanceRepository.Create(ctx, attendance.Event{
		EmployeeID:    req.EmployeeID,
		Date:          date,
		Status:        status,
		LoginTime:     &now,
		LoginLocation: req.Location,
		LateMinutes:   penalty.DelayMinutes,
		PenaltyAmount: penalty.TotalPenalty,
		WorkingHours:  decimal.Zero,
		OvertimeHours: decimal.Zero,
	})
	if err != nil {
		return attendance.ClockInResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	slog.Info("Employee clocked in",
		"employee_id", req.EmployeeID,
		"date", date,
		"status", status,
		"late_minutes", penalty.DelayMinutes,
		"penalty", penalty.TotalPenalty.StringFixed(2),
	)

	return attendance.ClockInResponse{
		EmployeeID:  created.EmployeeID,
		Date:        date,
		LoginTime:   now,
		Status:      status,
		LatePenalty: penalty,
	}, nil
}

// ClockOut implements attendance.AttendanceService.
// A login from the previous day that is still open is closed as a night shift.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.ClockOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockOutResponse{}, err
	}
	if _, err := a.activeEmployee(ctx, req.EmployeeID); err != nil {
		return attendance.ClockOutResponse{}, err
	}

	now := a.now().In(a.loc)

	event, err := a.openSession(ctx, req.EmployeeID, now)
	if err != nil {
		return attendance.ClockOutResponse{}, err
	}

	total, overtime := WorkingHours(*event.LoginTime, now)
	event.LogoutTime = &now
	event.LogoutLocation = req.Location
	event.WorkingHours = total
	event.OvertimeHours = overtime

	if err := a.AttendanceRepository.CloseSession(ctx, event); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.ClockOutResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.ClockOutResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	slog.Info("Employee clocked out",
		"employee_id", req.EmployeeID,
		"date", event.Date,
		"hours", total.StringFixed(2),
		"overtime", overtime.StringFixed(2),
	)

	return attendance.ClockOutResponse{
		EmployeeID:    req.EmployeeID,
		Date:          event.Date,
		LogoutTime:    now,
		TotalHours:    total,
		OvertimeHours: overtime,
	}, nil
}

func (a *AttendanceServiceImpl) openSession(ctx context.Context, employeeID string, now time.Time) (attendance.Event, error) {
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")

	event, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	switch {
	case err == nil:
		if event.IsOpen() {
			return event, nil
		}
		if event.LogoutTime != nil {
			return attendance.Event{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.Event{}, attendance.ErrNotCheckedIn
	case !errors.Is(err, attendance.ErrAttendanceNotFound):
		return attendance.Event{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	event, err = a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, yesterday)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Event{}, attendance.ErrNotCheckedIn
		}
		return attendance.Event{}, fmt.Errorf("failed to get previous day's attendance: %w", err)
	}
	if !event.IsOpen() {
		return attendance.Event{}, attendance.ErrNotCheckedIn
	}
	return event, nil
}

// MonthlyReport implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MonthlyReport(ctx context.Context, employeeID string, year, month int) (attendance.MonthlyReport, error) {
	if !validator.IsValidEmployeeID(employeeID) {
		return attendance.MonthlyReport{}, validator.ValidationErrors{{Field: "employee_id", Message: "has an invalid format"}}
	}
	workingDays, err := calendar.WorkingDays(year, month)
	if err != nil {
		return attendance.MonthlyReport{}, err
	}
	if _, err := a.EmployeeRepository.GetByEmployeeID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.MonthlyReport{}, employee.ErrEmployeeNotFound
		}
		return attendance.MonthlyReport{}, fmt.Errorf("failed to get employee: %w", err)
	}

	events, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return attendance.MonthlyReport{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	monthEvents, warnings := FilterMonth(events, year, month)
	for _, w := range warnings {
		slog.Warn("Skipping malformed attendance record", "employee_id", employeeID, "date", w.Date, "error", w.Err)
	}

	return BuildMonthlyReport(employeeID, year, month, workingDays, monthEvents, warnings), nil
}

// BuildMonthlyReport summarises the month's events. Day counts are per
// distinct calendar day.
func BuildMonthlyReport(employeeID string, year, month, workingDays int, events []DatedEvent, warnings []attendance.ParseWarning) attendance.MonthlyReport {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Day.Before(events[j].Day)
	})

	present := map[string]struct{}{}
	late := map[string]struct{}{}
	onLeave := map[string]struct{}{}

	report := attendance.MonthlyReport{
		EmployeeID:         employeeID,
		Year:               year,
		Month:              month,
		MonthName:          calendar.MonthName(month),
		TotalWorkingDays:   workingDays,
		TotalPenaltyAmount: decimal.Zero,
		OvertimeHours:      decimal.Zero,
		Records:            make([]attendance.Event, 0, len(events)),
		Warnings:           WarningMessages(warnings),
	}

	for _, ev := range events {
		day := ev.Day.Format("2006-01-02")
		if ev.Status.IsPresence() {
			present[day] = struct{}{}
		}
		switch ev.Status {
		case attendance.StatusLate:
			late[day] = struct{}{}
		case attendance.StatusOnLeave:
			onLeave[day] = struct{}{}
		}

		report.TotalLateMinutes += ev.LateMinutes
		report.TotalPenaltyAmount = report.TotalPenaltyAmount.Add(ev.PenaltyAmount)
		report.OvertimeHours = report.OvertimeHours.Add(ev.OvertimeHours)
		report.Records = append(report.Records, ev.Event)
	}

	report.PresentDays = len(present)
	report.LateDays = len(late)
	report.OnLeaveDays = len(onLeave)
	report.AbsentDays = workingDays - report.PresentDays - report.OnLeaveDays
	if report.AbsentDays < 0 {
		report.AbsentDays = 0
	}
	report.TotalPenaltyAmount = report.TotalPenaltyAmount.Round(2)
	report.OvertimeHours = report.OvertimeHours.Round(2)
	report.AttendancePercentage = payroll.Percentage(report.PresentDays, workingDays)
	report.PunctualityScore = PunctualityScore(workingDays, report.LateDays)

	return report
}

// ClassifyLatePenalty implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClassifyLatePenalty(ctx context.Context, req attendance.LatePenaltyRequest) (attendance.LatePenaltyResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.LatePenaltyResult{}, err
	}

	scheduled, err := parseTimeOfDay(req.ScheduledTime)
	if err != nil {
		return attendance.LatePenaltyResult{}, validator.ValidationErrors{{Field: "scheduled_time", Message: "must be HH:MM"}}
	}
	actual, err := parseTimeOfDay(req.ActualTime)
	if err != nil {
		return attendance.LatePenaltyResult{}, validator.ValidationErrors{{Field: "actual_time", Message: "must be HH:MM or an ISO8601 timestamp"}}
	}

	return a.classifier.ClassifyMonthly(scheduled, actual, req.MonthlyLateCount), nil
}

// parseTimeOfDay accepts "HH:MM" or a full timestamp. Only the clock part is
// used by the classifier.
func parseTimeOfDay(s string) (time.Time, error) {
	if hour, minute, err := validator.ParseClock(s); err == nil {
		return time.Date(2000, time.January, 1, hour, minute, 0, 0, time.UTC), nil
	}
	if t, ok := validator.IsValidDateTime(s); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", s)
}
