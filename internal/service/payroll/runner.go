package payroll

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-payroll/internal/domain/payroll"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RunPayroll implements payroll.PayrollService.
//
// Employees are calculated concurrently, at most s.workers at a time. A failure
// for one employee is recorded on the run and does not stop the others. When
// ctx is cancelled no further employees are started and the partial run is
// not saved.
func (s *PayrollServiceImpl) RunPayroll(ctx context.Context, req payroll.RunPayrollRequest) (payroll.PayrollRun, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRun{}, err
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return payroll.PayrollRun{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	run := payroll.PayrollRun{
		ID:          uuid.NewString(),
		PeriodYear:  req.Year,
		PeriodMonth: req.Month,
		Failed:      []payroll.RunFailure{},
		Results:     []payroll.SalaryCalculationResult{},
		StartedAt:   s.now().UTC(),
	}
	slog.Info("Payroll run started", "run_id", run.ID, "year", req.Year, "month", req.Month, "employees", len(employees))

	// Each worker writes only its own slot.
	results := make([]*payroll.SalaryCalculationResult, len(employees))
	failures := make([]error, len(employees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, emp := range employees {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := s.calculateFor(gctx, emp, req.Year, req.Month, nil, nil, nil)
			if err != nil {
				failures[i] = err
				return nil
			}
			results[i] = &result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return payroll.PayrollRun{}, fmt.Errorf("payroll run cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return payroll.PayrollRun{}, fmt.Errorf("payroll run cancelled: %w", err)
	}

	var records []payroll.SalaryRecord
	for i, emp := range employees {
		switch {
		case failures[i] != nil:
			slog.Warn("Payroll calculation failed", "run_id", run.ID, "employee_id", emp.EmployeeID, "error", failures[i])
			run.Failed = append(run.Failed, payroll.RunFailure{EmployeeID: emp.EmployeeID, Error: failures[i].Error()})
		case results[i] != nil:
			run.Results = append(run.Results, *results[i])
			records = append(records, newSalaryRecord(emp.EmployeeID, *results[i]))
		}
	}
	run.Processed = len(run.Results)
	run.FinishedAt = s.now().UTC()

	if err := s.salaryRepo.SavePayrollRun(ctx, run, records); err != nil {
		return payroll.PayrollRun{}, fmt.Errorf("failed to save payroll run: %w", err)
	}

	slog.Info("Payroll run finished",
		"run_id", run.ID,
		"processed", run.Processed,
		"failed", len(run.Failed),
		"duration", run.FinishedAt.Sub(run.StartedAt),
	)
	return run, nil
}
