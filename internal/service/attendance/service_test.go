package attendance

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/calendar"
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	mu     sync.Mutex
	events []attendance.Event
	err    error
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return attendance.Event{}, f.err
	}
	event.ID = event.EmployeeID + "-" + event.Date
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (attendance.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return attendance.Event{}, f.err
	}
	for _, ev := range f.events {
		if ev.EmployeeID == employeeID && ev.Date == date {
			return ev, nil
		}
	}
	return attendance.Event{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) CloseSession(ctx context.Context, event attendance.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, ev := range f.events {
		if ev.ID == event.ID {
			f.events[i] = event
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.Event
	for _, ev := range f.events {
		if ev.EmployeeID == employeeID {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (f *fakeAttendanceRepo) CountLateInMonth(ctx context.Context, employeeID string, year, month int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, ev := range f.events {
		d, err := ParseEventDate(ev.Date)
		if err != nil || ev.EmployeeID != employeeID {
			continue
		}
		if d.Year() == year && int(d.Month()) == month && ev.Status == attendance.StatusLate {
			count++
		}
	}
	return count, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByEmployeeID(ctx context.Context, employeeID string) (employee.Employee, error) {
	emp, ok := f.employees[employeeID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.IsActive() {
			out = append(out, emp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

func newFakeEmployees() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"EMP001": {EmployeeID: "EMP001", FullName: "Asha Rao", BasicSalary: decimal.NewFromInt(50000), Status: employee.StatusActive},
		"EMP002": {EmployeeID: "EMP002", FullName: "Ravi Kumar", BasicSalary: decimal.NewFromInt(30000), Status: employee.StatusInactive},
	}}
}

func newTestAttendanceService(repo *fakeAttendanceRepo, now time.Time) *AttendanceServiceImpl {
	svc := NewAttendanceService(
		repo,
		newFakeEmployees(),
		NewLatePenaltyClassifier(attendance.DefaultPenaltyPolicy()),
		DefaultScheduledLogin,
		time.UTC,
	).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return now }
	return svc
}

// Test on-time clock in is stored as present without penalty
func TestAttendanceService_ClockIn_OnTime(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := newTestAttendanceService(repo, time.Date(2024, time.February, 5, 9, 40, 0, 0, time.UTC))

	resp, err := svc.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: "EMP001", Location: "HQ"})

	require.NoError(t, err)
	assert.Equal(t, "2024-02-05", resp.Date)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.Equal(t, attendance.CategoryOnTime, resp.LatePenalty.Category)
	require.Len(t, repo.events, 1)
	assert.Equal(t, "HQ", repo.events[0].LoginLocation)
}

// Test a late clock in records minutes and penalty
func TestAttendanceService_ClockIn_Late(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := newTestAttendanceService(repo, time.Date(2024, time.February, 5, 10, 20, 0, 0, time.UTC))

	resp, err := svc.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: "EMP001"})

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, resp.Status)
	assert.Equal(t, 35, resp.LatePenalty.DelayMinutes)
	assert.Equal(t, attendance.CategoryMajorLate, resp.LatePenalty.Category)
	assert.Equal(t, "500", repo.events[0].PenaltyAmount.String())
	assert.Equal(t, 35, repo.events[0].LateMinutes)
}

// Test the fourth late login of the month carries the surcharge
func TestAttendanceService_ClockIn_MonthlyExcess(t *testing.T) {
	repo := &fakeAttendanceRepo{events: []attendance.Event{
		{ID: "1", EmployeeID: "EMP001", Date: "2024-02-01", Status: attendance.StatusLate},
		{ID: "2", EmployeeID: "EMP001", Date: "2024-02-02", Status: attendance.StatusLate},
		{ID: "3", EmployeeID: "EMP001", Date: "2024-02-03", Status: attendance.StatusLate},
		{ID: "4", EmployeeID: "EMP001", Date: "2024-01-30", Status: attendance.StatusLate},
	}}
	svc := newTestAttendanceService(repo, time.Date(2024, time.February, 5, 10, 0, 0, 0, time.UTC))

	resp, err := svc.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: "EMP001"})

	require.NoError(t, err)
	assert.Equal(t, attendance.CategoryGracePeriod, resp.LatePenalty.Category)
	assert.Equal(t, "1500", resp.LatePenalty.AdditionalPenalty.String())
	assert.Equal(t, "1500", resp.LatePenalty.TotalPenalty.String())
}

func TestAttendanceService_ClockIn_Twice(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := newTestAttendanceService(repo, time.Date(2024, time.February, 5, 9, 40, 0, 0, time.UTC))

	_, err := svc.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: "EMP001"})
	require.NoError(t, err)

	_, err = svc.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: "EMP001"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestAttendanceService_ClockIn_Validation(t *testing.T) {
	svc := newTestAttendanceService(&fakeAttendanceRepo{}, time.Now())

	_, err := svc.ClockIn(context.Background(), attendance.ClockInRequest{})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "employee_id", verrs[0].Field)
}

func TestAttendanceService_ClockIn_UnknownAndInactive(t *testing.T) {
	svc := newTestAttendanceService(&fakeAttendanceRepo{}, time.Now())

	_, err := svc.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: "EMP999"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: "EMP002"})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

// Test clock out computes hours net of lunch
func TestAttendanceService_ClockOut(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := newTestAttendanceService(repo, time.Date(2024, time.February, 5, 9, 30, 0, 0, time.UTC))
	_, err := svc.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: "EMP001"})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2024, time.February, 5, 19, 0, 0, 0, time.UTC) }
	resp, err := svc.ClockOut(context.Background(), attendance.ClockOutRequest{EmployeeID: "EMP001", Location: "HQ"})

	require.NoError(t, err)
	assert.Equal(t, "8.5", resp.TotalHours.String())
	assert.Equal(t, "0.5", resp.OvertimeHours.String())
	assert.NotNil(t, repo.events[0].LogoutTime)
	assert.Equal(t, "HQ", repo.events[0].LogoutLocation)

	_, err = svc.ClockOut(context.Background(), attendance.ClockOutRequest{EmployeeID: "EMP001"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

// Test a login left open overnight is closed the next morning
func TestAttendanceService_ClockOut_NextDay(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := newTestAttendanceService(repo, time.Date(2024, time.February, 5, 20, 0, 0, 0, time.UTC))
	_, err := svc.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: "EMP001"})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2024, time.February, 6, 5, 0, 0, 0, time.UTC) }
	resp, err := svc.ClockOut(context.Background(), attendance.ClockOutRequest{EmployeeID: "EMP001"})

	require.NoError(t, err)
	assert.Equal(t, "2024-02-05", resp.Date)
	assert.Equal(t, "8", resp.TotalHours.String())
}

func TestAttendanceService_ClockOut_NotCheckedIn(t *testing.T) {
	svc := newTestAttendanceService(&fakeAttendanceRepo{}, time.Date(2024, time.February, 5, 18, 0, 0, 0, time.UTC))

	_, err := svc.ClockOut(context.Background(), attendance.ClockOutRequest{EmployeeID: "EMP001"})

	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestAttendanceService_MonthlyReport(t *testing.T) {
	repo := &fakeAttendanceRepo{events: []attendance.Event{
		{EmployeeID: "EMP001", Date: "2024-02-01", Status: attendance.StatusPresent, OvertimeHours: decimal.RequireFromString("1.25")},
		{EmployeeID: "EMP001", Date: "2024-02-02", Status: attendance.StatusLate, LateMinutes: 20, PenaltyAmount: decimal.NewFromInt(200)},
		{EmployeeID: "EMP001", Date: "2024-02-03", Status: attendance.StatusLate, LateMinutes: 70, PenaltyAmount: decimal.NewFromInt(1000)},
		{EmployeeID: "EMP001", Date: "2024-02-05", Status: attendance.StatusOnLeave},
		{EmployeeID: "EMP001", Date: "2024-03-01", Status: attendance.StatusPresent},
		{EmployeeID: "EMP001", Date: "garbage", Status: attendance.StatusPresent},
		{EmployeeID: "EMP003", Date: "2024-02-01", Status: attendance.StatusPresent},
	}}
	svc := newTestAttendanceService(repo, time.Now())

	report, err := svc.MonthlyReport(context.Background(), "EMP001", 2024, 2)

	require.NoError(t, err)
	assert.Equal(t, "February", report.MonthName)
	assert.Equal(t, 25, report.TotalWorkingDays)
	assert.Equal(t, 3, report.PresentDays)
	assert.Equal(t, 2, report.LateDays)
	assert.Equal(t, 1, report.OnLeaveDays)
	assert.Equal(t, 21, report.AbsentDays)
	assert.Equal(t, 90, report.TotalLateMinutes)
	assert.Equal(t, "1200", report.TotalPenaltyAmount.String())
	assert.Equal(t, "1.25", report.OvertimeHours.String())
	assert.Equal(t, "12", report.AttendancePercentage.String())
	assert.Equal(t, "92", report.PunctualityScore.String())
	require.Len(t, report.Records, 4)
	assert.Equal(t, "2024-02-01", report.Records[0].Date)
	assert.Len(t, report.Warnings, 1)
}

func TestAttendanceService_MonthlyReport_InvalidMonth(t *testing.T) {
	svc := newTestAttendanceService(&fakeAttendanceRepo{}, time.Now())

	_, err := svc.MonthlyReport(context.Background(), "EMP001", 2024, 13)

	assert.ErrorIs(t, err, calendar.ErrInvalidDate)
}

func TestAttendanceService_ClassifyLatePenalty(t *testing.T) {
	svc := newTestAttendanceService(&fakeAttendanceRepo{}, time.Now())

	result, err := svc.ClassifyLatePenalty(context.Background(), attendance.LatePenaltyRequest{
		ScheduledTime:    "09:45",
		ActualTime:       "2024-02-05T10:46:00+05:30",
		MonthlyLateCount: 4,
	})

	require.NoError(t, err)
	assert.Equal(t, 61, result.DelayMinutes)
	assert.Equal(t, attendance.CategorySevereLate, result.Category)
	assert.Equal(t, "2500", result.TotalPenalty.String())

	_, err = svc.ClassifyLatePenalty(context.Background(), attendance.LatePenaltyRequest{ScheduledTime: "9:45", ActualTime: "10:00"})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}
