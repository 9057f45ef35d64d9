package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/opspay/payroll-backend-go/internal/domain/employee"
	"github.com/opspay/payroll-backend-go/internal/handler/http/response"
	employeeservice "github.com/opspay/payroll-backend-go/internal/service/employee"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService *employeeservice.EmployeeService
}

func NewEmployeeHandler(employeeService *employeeservice.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	enterpriseID, ok := enterpriseIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Token carries no enterprise")
		return
	}

	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.employeeService.CreateEmployee(r.Context(), enterpriseID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", result)
}

func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	enterpriseID, ok := enterpriseIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Token carries no enterprise")
		return
	}

	result, err := h.employeeService.ListEmployees(r.Context(), enterpriseID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	enterpriseID, ok := enterpriseIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Token carries no enterprise")
		return
	}

	result, err := h.employeeService.GetEmployee(r.Context(), enterpriseID, chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *employeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	enterpriseID, ok := enterpriseIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Token carries no enterprise")
		return
	}

	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.employeeService.UpdateEmployee(r.Context(), enterpriseID, chi.URLParam(r, "employeeID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated", result)
}

func (h *employeeHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	enterpriseID, ok := enterpriseIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Token carries no enterprise")
		return
	}

	if err := h.employeeService.DeactivateEmployee(r.Context(), enterpriseID, chi.URLParam(r, "employeeID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deactivated", nil)
}
