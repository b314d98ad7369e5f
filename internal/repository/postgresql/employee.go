package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, employee_id, full_name, department, designation, basic_salary,
	is_metro_city, state, status, joining_date, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeID, &emp.FullName, &emp.Department, &emp.Designation, &emp.BasicSalary,
		&emp.IsMetroCity, &emp.State, &emp.Status, &emp.JoiningDate, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// GetByEmployeeID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", employeeID, err)
	}
	return emp, nil
}

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE status = $1 ORDER BY employee_id`

	rows, err := q.Query(ctx, query, employee.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}
