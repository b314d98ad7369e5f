package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type salaryRecordRepositoryImpl struct {
	db *database.DB
}

func NewSalaryRecordRepository(db *database.DB) payroll.SalaryRecordRepository {
	return &salaryRecordRepositoryImpl{db: db}
}

const salaryRecordColumns = `
	id, employee_id, period_year, period_month, gross_salary, total_deductions, net_salary,
	result, created_at, updated_at
`

func scanSalaryRecord(row pgx.Row) (payroll.SalaryRecord, error) {
	var rec payroll.SalaryRecord
	var resultBytes []byte
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.PeriodYear, &rec.PeriodMonth, &rec.GrossSalary,
		&rec.TotalDeductions, &rec.NetSalary, &resultBytes, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return payroll.SalaryRecord{}, err
	}
	if err := json.Unmarshal(resultBytes, &rec.Result); err != nil {
		return payroll.SalaryRecord{}, fmt.Errorf("failed to decode salary result %s: %w", rec.ID, err)
	}
	return rec, nil
}

func (r *salaryRecordRepositoryImpl) upsert(ctx context.Context, record payroll.SalaryRecord, runID *string) (payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	resultJSON, err := json.Marshal(record.Result)
	if err != nil {
		return payroll.SalaryRecord{}, fmt.Errorf("failed to encode salary result: %w", err)
	}

	query := `
		INSERT INTO salary_records (
			id, employee_id, period_year, period_month, gross_salary, total_deductions, net_salary,
			result, payroll_run_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT ON CONSTRAINT uk_salary_employee_period DO UPDATE SET
			gross_salary = EXCLUDED.gross_salary,
			total_deductions = EXCLUDED.total_deductions,
			net_salary = EXCLUDED.net_salary,
			result = EXCLUDED.result,
			payroll_run_id = EXCLUDED.payroll_run_id,
			updated_at = NOW()
		RETURNING ` + salaryRecordColumns

	saved, err := scanSalaryRecord(q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.PeriodYear, record.PeriodMonth, record.GrossSalary,
		record.TotalDeductions, record.NetSalary, resultJSON, runID,
	))
	if err != nil {
		return payroll.SalaryRecord{}, fmt.Errorf("failed to upsert salary record: %w", err)
	}
	return saved, nil
}

// UpsertSalaryRecord implements payroll.SalaryRecordRepository.
func (r *salaryRecordRepositoryImpl) UpsertSalaryRecord(ctx context.Context, record payroll.SalaryRecord) (payroll.SalaryRecord, error) {
	return r.upsert(ctx, record, nil)
}

// GetSalaryRecord implements payroll.SalaryRecordRepository.
func (r *salaryRecordRepositoryImpl) GetSalaryRecord(ctx context.Context, employeeID string, year, month int) (payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryRecordColumns + `
		FROM salary_records
		WHERE employee_id = $1 AND period_year = $2 AND period_month = $3
	`

	rec, err := scanSalaryRecord(q.QueryRow(ctx, query, employeeID, year, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryRecord{}, payroll.ErrSalaryRecordNotFound
		}
		return payroll.SalaryRecord{}, fmt.Errorf("failed to get salary record: %w", err)
	}
	return rec, nil
}

// ListByEmployeeYear implements payroll.SalaryRecordRepository.
func (r *salaryRecordRepositoryImpl) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryRecordColumns + `
		FROM salary_records
		WHERE employee_id = $1 AND period_year = $2
		ORDER BY period_month
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	var records []payroll.SalaryRecord
	for rows.Next() {
		rec, err := scanSalaryRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// SavePayrollRun implements payroll.SalaryRecordRepository.
func (r *salaryRecordRepositoryImpl) SavePayrollRun(ctx context.Context, run payroll.PayrollRun, records []payroll.SalaryRecord) error {
	failedJSON, err := json.Marshal(run.Failed)
	if err != nil {
		return fmt.Errorf("failed to encode run failures: %w", err)
	}

	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		query := `
			INSERT INTO payroll_runs (id, period_year, period_month, processed, failed, started_at, finished_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		if _, err := q.Exec(ctx, query,
			run.ID, run.PeriodYear, run.PeriodMonth, run.Processed, failedJSON, run.StartedAt, run.FinishedAt,
		); err != nil {
			return fmt.Errorf("failed to insert payroll run: %w", err)
		}

		for _, rec := range records {
			if _, err := r.upsert(ctx, rec, &run.ID); err != nil {
				return fmt.Errorf("employee %s: %w", rec.EmployeeID, err)
			}
		}
		return nil
	})
}
