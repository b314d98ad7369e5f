package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hrms-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll/internal/domain/user"
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", validator.ValidationErrors{{Field: "month", Message: "bad"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"wrapped not found", fmt.Errorf("lookup: %w", employee.ErrEmployeeNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"invalid date", payroll.ErrInvalidDate, http.StatusBadRequest, "BAD_REQUEST"},
		{"no results", payroll.ErrNoMonthlyResults, http.StatusNotFound, "NOT_FOUND"},
		{"checked in", attendance.ErrAlreadyCheckedIn, http.StatusConflict, "CONFLICT"},
		{"malformed", attendance.ParseWarning{Index: 1, Date: "x", Err: errors.New("bad")}, http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"},
		{"token", user.ErrInvalidToken, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"other employee", user.ErrEmployeeAccessDenied, http.StatusForbidden, "FORBIDDEN"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body Response
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestValidationErrorDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{{Field: "employee_id", Message: "is required"}})

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "is required", body.Error.Details["employee_id"])
}
