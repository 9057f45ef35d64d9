package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/opspay/payroll-backend-go/internal/domain/attendance"
	"github.com/opspay/payroll-backend-go/internal/handler/http/response"
	attendanceservice "github.com/opspay/payroll-backend-go/internal/service/attendance"
)

type AttendanceHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	Sweep(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService *attendanceservice.AttendanceService
}

func NewAttendanceHandler(attendanceService *attendanceservice.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *attendanceHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	enterpriseID, ok := enterpriseIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Token carries no enterprise")
		return
	}

	var req attendance.RecordAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.RecordAttendance(r.Context(), enterpriseID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance recorded", result)
}

func (h *attendanceHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	enterpriseID, ok := enterpriseIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Token carries no enterprise")
		return
	}

	startDate, err := time.Parse("2006-01-02", r.URL.Query().Get("start_date"))
	if err != nil {
		response.BadRequest(w, "start_date must be YYYY-MM-DD", nil)
		return
	}
	endDate, err := time.Parse("2006-01-02", r.URL.Query().Get("end_date"))
	if err != nil {
		response.BadRequest(w, "end_date must be YYYY-MM-DD", nil)
		return
	}

	result, err := h.attendanceService.ListAttendance(r.Context(), enterpriseID, chi.URLParam(r, "employeeID"), startDate, endDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Sweep triggers the absence sweep for one date on demand, the same work the
// scheduled job performs after the daily cutoff.
func (h *attendanceHandlerImpl) Sweep(w http.ResponseWriter, r *http.Request) {
	enterpriseID, ok := enterpriseIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Token carries no enterprise")
		return
	}

	var req attendance.SweepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	created, err := h.attendanceService.MarkAbsentees(r.Context(), enterpriseID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence sweep completed", map[string]int{"marked_absent": created})
}
