package payroll

import "context"

// SalaryRecordRepository defines data access methods for calculated salaries.
type SalaryRecordRepository interface {
	// UpsertSalaryRecord stores the record, replacing any earlier one for the same employee and period
	UpsertSalaryRecord(ctx context.Context, record SalaryRecord) (SalaryRecord, error)

	// GetSalaryRecord returns ErrSalaryRecordNotFound when the period has not been calculated
	GetSalaryRecord(ctx context.Context, employeeID string, year, month int) (SalaryRecord, error)

	// ListByEmployeeYear returns the year's records ordered by month
	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]SalaryRecord, error)

	// SavePayrollRun stores a batch run and upserts its salary records atomically
	SavePayrollRun(ctx context.Context, run PayrollRun, records []SalaryRecord) error
}
