package payroll

import (
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/calendar"
)

// WorkingDays counts the month's days that are not Sundays. An out-of-range
// year or month returns an error wrapping payroll.ErrInvalidDate.
func WorkingDays(year, month int) (int, error) {
	return calendar.WorkingDays(year, month)
}
