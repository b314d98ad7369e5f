package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-payroll/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-payroll/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	MonthlyReport(w http.ResponseWriter, r *http.Request)
	ClassifyLatePenalty(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// callerEmployeeID defaults an empty employee_id to the caller's own.
func callerEmployeeID(r *http.Request, employeeID string) string {
	if employeeID != "" {
		return employeeID
	}
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		return claims.EmployeeID
	}
	return ""
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockInRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = callerEmployeeID(r, req.EmployeeID)

	if _, err := authorizeEmployee(r, req.EmployeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", result)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockOutRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = callerEmployeeID(r, req.EmployeeID)

	if _, err := authorizeEmployee(r, req.EmployeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, "Clock out successful", result)
}

// MonthlyReport implements AttendanceHandler.
func (h *attendanceHandlerImpl) MonthlyReport(w http.ResponseWriter, r *http.Request) {
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

	report, err := h.attendanceService.MonthlyReport(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

// ClassifyLatePenalty implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClassifyLatePenalty(w http.ResponseWriter, r *http.Request) {
	var req attendance.LatePenaltyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.ClassifyLatePenalty(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
