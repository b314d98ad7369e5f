package payroll

import (
	"errors"

	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/calendar"
)

var (
	ErrInvalidDate          = calendar.ErrInvalidDate
	ErrSalaryRecordNotFound = errors.New("salary record not found")
	ErrNoMonthlyResults     = errors.New("no monthly salary results for the requested year")
	ErrPayslipRender        = errors.New("failed to render salary slip")
)
