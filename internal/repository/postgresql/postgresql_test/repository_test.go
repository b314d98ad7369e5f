package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	seedEmployee(t, db, "EMP002", "Ravi Kumar", "30000", "active")
	seedEmployee(t, db, "EMP001", "Asha Rao", "50000", "active")
	seedEmployee(t, db, "EMP003", "Old Timer", "20000", "inactive")
	repo := postgresql.NewEmployeeRepository(db)

	emp, err := repo.GetByEmployeeID(ctx, "EMP001")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", emp.FullName)
	assert.True(t, emp.BasicSalary.Equal(decimal.NewFromInt(50000)))
	assert.True(t, emp.IsActive())
	require.NotNil(t, emp.IsMetroCity)
	assert.True(t, *emp.IsMetroCity)

	_, err = db.Exec(ctx, `INSERT INTO employees (employee_id, full_name, basic_salary, status) VALUES ('EMP009', 'No Flag', 10000, 'inactive')`)
	require.NoError(t, err)
	emp, err = repo.GetByEmployeeID(ctx, "EMP009")
	require.NoError(t, err)
	assert.Nil(t, emp.IsMetroCity)

	_, err = repo.GetByEmployeeID(ctx, "EMP404")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "EMP001", active[0].EmployeeID)
	assert.Equal(t, "EMP002", active[1].EmployeeID)
}

func TestAttendanceRepository(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	seedEmployee(t, db, "EMP001", "Asha Rao", "50000", "active")
	repo := postgresql.NewAttendanceRepository(db)

	login := time.Date(2024, time.February, 5, 10, 20, 0, 0, time.UTC)
	created, err := repo.Create(ctx, attendance.Event{
		EmployeeID:    "EMP001",
		Date:          "2024-02-05",
		Status:        attendance.StatusLate,
		LoginTime:     &login,
		LateMinutes:   35,
		PenaltyAmount: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "2024-02-05", created.Date)

	_, err = repo.Create(ctx, attendance.Event{EmployeeID: "EMP001", Date: "2024-02-05", Status: attendance.StatusPresent, LoginTime: &login})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	logout := login.Add(9 * time.Hour)
	created.LogoutTime = &logout
	created.WorkingHours = decimal.NewFromInt(8)
	require.NoError(t, repo.CloseSession(ctx, created))
	assert.ErrorIs(t, repo.CloseSession(ctx, created), attendance.ErrAlreadyCheckedOut)

	got, err := repo.GetByEmployeeAndDate(ctx, "EMP001", "2024-02-05")
	require.NoError(t, err)
	assert.False(t, got.IsOpen())

	_, err = repo.GetByEmployeeAndDate(ctx, "EMP001", "2024-02-06")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	count, err := repo.CountLateInMonth(ctx, "EMP001", 2024, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	events, err := repo.ListByEmployee(ctx, "EMP001")
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestSalaryRecordRepository(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	seedEmployee(t, db, "EMP001", "Asha Rao", "50000", "active")
	repo := postgresql.NewSalaryRecordRepository(db)

	record := func(month int, net int64) payroll.SalaryRecord {
		return payroll.SalaryRecord{
			ID:              uuid.NewString(),
			EmployeeID:      "EMP001",
			PeriodYear:      2024,
			PeriodMonth:     month,
			GrossSalary:     decimal.NewFromInt(net + 1000),
			TotalDeductions: decimal.NewFromInt(1000),
			NetSalary:       decimal.NewFromInt(net),
			Result: payroll.SalaryCalculationResult{
				EmployeeInfo: payroll.EmployeeIdentity{EmployeeID: "EMP001"},
				Year:         2024,
				Month:        month,
				NetSalary:    decimal.NewFromInt(net),
			},
		}
	}

	_, err := repo.UpsertSalaryRecord(ctx, record(3, 30000))
	require.NoError(t, err)
	_, err = repo.UpsertSalaryRecord(ctx, record(3, 31000))
	require.NoError(t, err)

	got, err := repo.GetSalaryRecord(ctx, "EMP001", 2024, 3)
	require.NoError(t, err)
	assert.True(t, got.NetSalary.Equal(decimal.NewFromInt(31000)))
	assert.True(t, got.Result.NetSalary.Equal(decimal.NewFromInt(31000)))

	_, err = repo.GetSalaryRecord(ctx, "EMP001", 2024, 4)
	assert.ErrorIs(t, err, payroll.ErrSalaryRecordNotFound)

	run := payroll.PayrollRun{
		ID:          uuid.NewString(),
		PeriodYear:  2024,
		PeriodMonth: 1,
		Processed:   1,
		Failed:      []payroll.RunFailure{{EmployeeID: "EMP009", Error: "employee not found"}},
		StartedAt:   time.Now().UTC(),
		FinishedAt:  time.Now().UTC(),
	}
	require.NoError(t, repo.SavePayrollRun(ctx, run, []payroll.SalaryRecord{record(1, 29000)}))

	records, err := repo.ListByEmployeeYear(ctx, "EMP001", 2024)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].PeriodMonth)
	assert.Equal(t, 3, records[1].PeriodMonth)
}

// Test a failing record rolls the whole run back
func TestSalaryRecordRepository_SavePayrollRunAtomic(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewSalaryRecordRepository(db)

	run := payroll.PayrollRun{ID: uuid.NewString(), PeriodYear: 2024, PeriodMonth: 1, StartedAt: time.Now(), FinishedAt: time.Now()}
	orphan := payroll.SalaryRecord{ID: uuid.NewString(), EmployeeID: "EMP404", PeriodYear: 2024, PeriodMonth: 1}

	assert.Error(t, repo.SavePayrollRun(ctx, run, []payroll.SalaryRecord{orphan}))

	var count int
	require.NoError(t, db.QueryRow(ctx, "SELECT COUNT(*) FROM payroll_runs").Scan(&count))
	assert.Zero(t, count)
}
