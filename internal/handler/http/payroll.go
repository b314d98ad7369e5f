package http

import (
	"encoding/base64"
	"net/http"

	"github.com/cmlabs-hris/hrms-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll/internal/domain/user"
	"github.com/cmlabs-hris/hrms-payroll/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Lookups
	GetWorkingDays(w http.ResponseWriter, r *http.Request)
	GetRates(w http.ResponseWriter, r *http.Request)
	GetAttendanceSummary(w http.ResponseWriter, r *http.Request)

	// Salary
	CalculateSalary(w http.ResponseWriter, r *http.Request)
	GenerateSalarySlip(w http.ResponseWriter, r *http.Request)
	GetAnnualSummary(w http.ResponseWriter, r *http.Request)

	// Batch
	RunPayroll(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== LOOKUPS ==========

func (h *payrollHandlerImpl) GetWorkingDays(w http.ResponseWriter, r *http.Request) {
	year, month, err := pathPeriod(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.GetWorkingDays(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetRates(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.payrollService.GetRates(r.Context()))
}

func (h *payrollHandlerImpl) GetAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if _, err := authorizeEmployee(r, employeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	year, month, err := pathPeriod(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.GetAttendanceSummary(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== SALARY ==========

func (h *payrollHandlerImpl) CalculateSalary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	claims, err := authorizeEmployee(r, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req payroll.CalculateSalaryRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = employeeID

	// Only HR may substitute attendance or pay inputs.
	if !claims.IsStaff() && (req.Attendance != nil || req.Allowances != nil || req.IsMetroCity != nil) {
		response.HandleError(w, user.ErrInsufficientPermissions)
		return
	}

	result, err := h.payrollService.CalculateSalary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GenerateSalarySlip returns the slip as JSON with base64 data, or the raw
// PDF when the query has download=true.
func (h *payrollHandlerImpl) GenerateSalarySlip(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if _, err := authorizeEmployee(r, employeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	var req payroll.GenerateSalarySlipRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.payrollService.GenerateSalarySlip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if r.URL.Query().Get("download") == "true" {
		pdf, err := base64.StdEncoding.DecodeString(result.PDFBase64)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Attachment(w, "application/pdf", result.FileName, pdf)
		return
	}

	response.Created(w, "Salary slip generated", result)
}

func (h *payrollHandlerImpl) GetAnnualSummary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if _, err := authorizeEmployee(r, employeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	year, err := pathInt(r, "year")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.GetAnnualSummary(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== BATCH ==========

func (h *payrollHandlerImpl) RunPayroll(w http.ResponseWriter, r *http.Request) {
	var req payroll.RunPayrollRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.RunPayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll run completed", result)
}
