package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll/internal/domain/user"
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		Error(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing access token")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrEmployeeAccessDenied):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		notFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		conflict(w, "Employee is inactive")
	case errors.Is(err, employee.ErrNegativeBasicSalary):
		unprocessable(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		conflict(w, "Already logged in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		conflict(w, "Already logged out today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "No active login found for today", nil)
	case errors.Is(err, attendance.ErrMalformedAttendanceRecord):
		unprocessable(w, err.Error())
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		notFound(w, "Attendance record not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidDate):
		BadRequest(w, "Invalid year or month", nil)
	case errors.Is(err, payroll.ErrNoMonthlyResults):
		notFound(w, "No salary records found for the year")
	case errors.Is(err, payroll.ErrSalaryRecordNotFound):
		notFound(w, "Salary record not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		Error(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred", nil)
	}
}

func notFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, "NOT_FOUND", message, nil)
}

func conflict(w http.ResponseWriter, message string) {
	Error(w, http.StatusConflict, "CONFLICT", message, nil)
}

func unprocessable(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", message, nil)
}
