package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/calendar"
)

const MonthlyPayrollJob = "monthly_payroll_run"

// PayrollJobs closes the previous month's payroll on the first day of each month.
type PayrollJobs struct {
	payrollService payroll.PayrollService
	enabled        bool
	now            func() time.Time

	mu         sync.Mutex
	lastPeriod string
}

func NewPayrollJobs(payrollService payroll.PayrollService, enabled bool) *PayrollJobs {
	return &PayrollJobs{
		payrollService: payrollService,
		enabled:        enabled,
		now:            time.Now,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	if !j.enabled {
		slog.Info("Cron: monthly payroll run disabled")
		return
	}
	scheduler.AddJob(MonthlyPayrollJob, 1*time.Hour, j.MonthlyPayrollRun)
}

// MonthlyPayrollRun runs the batch for the previous month. It only does work
// on day 1 (UTC) and at most once per period per process.
func (j *PayrollJobs) MonthlyPayrollRun(ctx context.Context) error {
	now := j.now().UTC()
	if now.Day() != 1 {
		return nil
	}

	year, month := calendar.PreviousMonth(now)
	period := calendar.Label(year, month)

	j.mu.Lock()
	if j.lastPeriod == period {
		j.mu.Unlock()
		return nil
	}
	j.mu.Unlock()

	slog.Info("Cron: Starting monthly payroll run", "period", period)

	run, err := j.payrollService.RunPayroll(ctx, payroll.RunPayrollRequest{Year: year, Month: month})
	if err != nil {
		return fmt.Errorf("failed to run payroll for %s: %w", period, err)
	}

	j.mu.Lock()
	j.lastPeriod = period
	j.mu.Unlock()

	slog.Info("Cron: Monthly payroll run completed",
		"period", period,
		"run_id", run.ID,
		"processed", run.Processed,
		"failed", len(run.Failed),
	)
	return nil
}
