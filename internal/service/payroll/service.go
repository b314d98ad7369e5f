package payroll

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/calendar"
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/storage"
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/validator"
	attendancesvc "github.com/cmlabs-hris/hrms-payroll/internal/service/attendance"
	"github.com/google/uuid"
)

type PayrollServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	salaryRepo     payroll.SalaryRecordRepository
	calculator     *SalaryCalculator
	renderer       payroll.PayslipRenderer
	files          storage.FileStorage // optional
	workers        int
	defaultMetro   bool
	now            func() time.Time
}

func NewPayrollService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	salaryRepo payroll.SalaryRecordRepository,
	calculator *SalaryCalculator,
	renderer payroll.PayslipRenderer,
	files storage.FileStorage,
	workers int,
	defaultMetro bool,
) payroll.PayrollService {
	if workers < 1 {
		workers = 1
	}
	return &PayrollServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		salaryRepo:     salaryRepo,
		calculator:     calculator,
		renderer:       renderer,
		files:          files,
		workers:        workers,
		defaultMetro:   defaultMetro,
		now:            time.Now,
	}
}

// resolvePeriod fills a zero period with the current month.
func (s *PayrollServiceImpl) resolvePeriod(year, month int) (int, int) {
	if year == 0 && month == 0 {
		now := s.now()
		return now.Year(), int(now.Month())
	}
	return year, month
}

func (s *PayrollServiceImpl) getEmployee(ctx context.Context, employeeID string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// calculateFor loads the employee's stored attendance when events is nil and
// runs the engine. Nothing is persisted.
func (s *PayrollServiceImpl) calculateFor(
	ctx context.Context,
	emp employee.Employee,
	year, month int,
	isMetro *bool,
	allowances *payroll.AllowanceOverride,
	events []attendance.Event,
) (payroll.SalaryCalculationResult, error) {
	if events == nil {
		stored, err := s.attendanceRepo.ListByEmployee(ctx, emp.EmployeeID)
		if err != nil {
			return payroll.SalaryCalculationResult{}, fmt.Errorf("failed to list attendance: %w", err)
		}
		events = stored
	}

	metro := s.defaultMetro
	switch {
	case isMetro != nil:
		metro = *isMetro
	case emp.IsMetroCity != nil:
		metro = *emp.IsMetroCity
	}

	return s.calculator.Calculate(CalculationInput{
		Identity: payroll.EmployeeIdentity{
			EmployeeID:  emp.EmployeeID,
			FullName:    emp.FullName,
			Department:  emp.Department,
			Designation: emp.Designation,
		},
		Profile: payroll.EmployeeSalaryProfile{
			BasicSalary: emp.BasicSalary,
			IsMetroCity: metro,
			State:       emp.State,
		},
		Year:       year,
		Month:      month,
		Attendance: events,
		Allowances: allowances,
	})
}

func newSalaryRecord(employeeID string, result payroll.SalaryCalculationResult) payroll.SalaryRecord {
	return payroll.SalaryRecord{
		ID:              uuid.NewString(),
		EmployeeID:      employeeID,
		PeriodYear:      result.Year,
		PeriodMonth:     result.Month,
		GrossSalary:     result.Earnings.GrossSalary,
		TotalDeductions: result.Deductions.TotalDeductions,
		NetSalary:       result.NetSalary,
		Result:          result,
	}
}

// ========== CALCULATION ==========

// CalculateSalary implements payroll.PayrollService.
func (s *PayrollServiceImpl) CalculateSalary(ctx context.Context, req payroll.CalculateSalaryRequest) (payroll.SalaryCalculationResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryCalculationResult{}, err
	}
	year, month := s.resolvePeriod(req.Year, req.Month)

	emp, err := s.getEmployee(ctx, req.EmployeeID)
	if err != nil {
		return payroll.SalaryCalculationResult{}, err
	}

	result, err := s.calculateFor(ctx, emp, year, month, req.IsMetroCity, req.Allowances, req.Attendance)
	if err != nil {
		return payroll.SalaryCalculationResult{}, err
	}

	if _, err := s.salaryRepo.UpsertSalaryRecord(ctx, newSalaryRecord(emp.EmployeeID, result)); err != nil {
		return payroll.SalaryCalculationResult{}, fmt.Errorf("failed to save salary record: %w", err)
	}

	slog.Info("Salary calculated",
		"employee_id", emp.EmployeeID,
		"period", result.EmployeeInfo.CalculationMonth,
		"gross", result.Earnings.GrossSalary.StringFixed(2),
		"net", result.NetSalary.StringFixed(2),
	)
	return result, nil
}

// GetAnnualSummary implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetAnnualSummary(ctx context.Context, employeeID string, year int) (payroll.AnnualSalarySummary, error) {
	if !validator.IsValidEmployeeID(employeeID) {
		return payroll.AnnualSalarySummary{}, validator.ValidationErrors{{Field: "employee_id", Message: "has an invalid format"}}
	}
	if !validator.IsValidPeriod(year, 1) {
		return payroll.AnnualSalarySummary{}, validator.ValidationErrors{{Field: "year", Message: "must be a four digit year"}}
	}
	if _, err := s.getEmployee(ctx, employeeID); err != nil {
		return payroll.AnnualSalarySummary{}, err
	}

	records, err := s.salaryRepo.ListByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return payroll.AnnualSalarySummary{}, fmt.Errorf("failed to list salary records: %w", err)
	}
	if len(records) == 0 {
		return payroll.AnnualSalarySummary{}, payroll.ErrNoMonthlyResults
	}

	results := make([]payroll.SalaryCalculationResult, len(records))
	for i, r := range records {
		results[i] = r.Result
	}
	return AggregateAnnual(results), nil
}

// ========== SALARY SLIP ==========

// SlipFileName is the download name of a salary slip, e.g.
// "Salary_Slip_Asha_Rao_2024_02.pdf".
func SlipFileName(fullName string, year, month int) string {
	name := strings.Join(strings.Fields(fullName), "_")
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return -1
		}
		return r
	}, name)
	if name == "" {
		name = "Employee"
	}
	return fmt.Sprintf("Salary_Slip_%s_%04d_%02d.pdf", name, year, month)
}

// GenerateSalarySlip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GenerateSalarySlip(ctx context.Context, req payroll.GenerateSalarySlipRequest) (payroll.SalarySlipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalarySlipResponse{}, err
	}

	result, err := s.CalculateSalary(ctx, payroll.CalculateSalaryRequest{
		EmployeeID: req.EmployeeID,
		Year:       req.Year,
		Month:      req.Month,
	})
	if err != nil {
		return payroll.SalarySlipResponse{}, err
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, result); err != nil {
		return payroll.SalarySlipResponse{}, fmt.Errorf("%w: %v", payroll.ErrPayslipRender, err)
	}

	fileName := SlipFileName(result.EmployeeInfo.FullName, result.Year, result.Month)
	resp := payroll.SalarySlipResponse{
		EmployeeID: result.EmployeeInfo.EmployeeID,
		FileName:   fileName,
		PDFBase64:  base64.StdEncoding.EncodeToString(buf.Bytes()),
		Salary:     result,
	}

	if s.files != nil {
		key := fmt.Sprintf("payslips/%04d/%02d/%s", result.Year, result.Month, fileName)
		stored, err := s.files.Upload(ctx, bytes.NewReader(buf.Bytes()), key, "application/pdf")
		if err != nil {
			return payroll.SalarySlipResponse{}, fmt.Errorf("failed to store salary slip: %w", err)
		}
		resp.URL = s.files.URL(stored)
	}

	return resp, nil
}

// ========== LOOKUPS ==========

// GetWorkingDays implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetWorkingDays(ctx context.Context, year, month int) (payroll.WorkingDaysResponse, error) {
	days, err := WorkingDays(year, month)
	if err != nil {
		return payroll.WorkingDaysResponse{}, err
	}
	return payroll.WorkingDaysResponse{
		Year:        year,
		Month:       month,
		MonthName:   calendar.MonthName(month),
		WorkingDays: days,
	}, nil
}

// GetAttendanceSummary implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetAttendanceSummary(ctx context.Context, employeeID string, year, month int) (payroll.AttendanceSummaryResponse, error) {
	if !validator.IsValidEmployeeID(employeeID) {
		return payroll.AttendanceSummaryResponse{}, validator.ValidationErrors{{Field: "employee_id", Message: "has an invalid format"}}
	}
	total, err := WorkingDays(year, month)
	if err != nil {
		return payroll.AttendanceSummaryResponse{}, err
	}
	if _, err := s.getEmployee(ctx, employeeID); err != nil {
		return payroll.AttendanceSummaryResponse{}, err
	}

	events, err := s.attendanceRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return payroll.AttendanceSummaryResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	present, warnings := attendancesvc.PresentDays(events, year, month)
	summary := payroll.NewAttendanceSummary(present, total)

	absent := total - present
	if absent < 0 {
		absent = 0
	}

	return payroll.AttendanceSummaryResponse{
		EmployeeID:           employeeID,
		Year:                 year,
		Month:                month,
		PresentDays:          summary.PresentDays,
		TotalWorkingDays:     summary.TotalWorkingDays,
		AbsentDays:           absent,
		AttendancePercentage: summary.AttendancePercentage,
		Warnings:             attendancesvc.WarningMessages(warnings),
	}, nil
}

// GetRates implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetRates(ctx context.Context) payroll.RateConfig {
	return s.calculator.Rates()
}
