package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/opspay/payroll-backend-go/internal/domain/paycycle"
	"github.com/opspay/payroll-backend-go/internal/handler/http/response"
	paycycleservice "github.com/opspay/payroll-backend-go/internal/service/paycycle"
)

type PayCycleHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GenerateBulletins(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Close(w http.ResponseWriter, r *http.Request)
	ListSlips(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	GetSlip(w http.ResponseWriter, r *http.Request)
}

type payCycleHandlerImpl struct {
	cycleService *paycycleservice.CycleService
}

func NewPayCycleHandler(cycleService *paycycleservice.CycleService) PayCycleHandler {
	return &payCycleHandlerImpl{cycleService: cycleService}
}

func (h *payCycleHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	enterpriseID, ok := enterpriseIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Token carries no enterprise")
		return
	}

	var req paycycle.CreateCycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.cycleService.CreateCycle(r.Context(), enterpriseID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay cycle created", result)
}

func (h *payCycleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	enterpriseID, ok := enterpriseIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Token carries no enterprise")
		return
	}

	result, err := h.cycleService.ListCycles(r.Context(), enterpriseID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payCycleHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	enterpriseID, ok := enterpriseIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Token carries no enterprise")
		return
	}

	result, err := h.cycleService.GetCycle(r.Context(), enterpriseID, chi.URLParam(r, "cycleID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payCycleHandlerImpl) GenerateBulletins(w http.ResponseWriter, r *http.Request) {
	enterpriseID, ok := enterpriseIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Token carries no enterprise")
		return
	}

	result, err := h.cycleService.GenerateBulletins(r.Context(), enterpriseID, chi.URLParam(r, "cycleID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bulletins generated", result)
}

func (h *payCycleHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	enterpriseID, ok := enterpriseIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Token carries no enterprise")
		return
	}

	result, err := h.cycleService.Approve(r.Context(), enterpriseID, chi.URLParam(r, "cycleID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay cycle approved", result)
}

func (h *payCycleHandlerImpl) Close(w http.ResponseWriter, r *http.Request) {
	enterpriseID, ok := enterpriseIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Token carries no enterprise")
		return
	}

	result, err := h.cycleService.Close(r.Context(), enterpriseID, chi.URLParam(r, "cycleID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay cycle closed", result)
}

func (h *payCycleHandlerImpl) ListSlips(w http.ResponseWriter, r *http.Request) {
	enterpriseID, ok := enterpriseIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Token carries no enterprise")
		return
	}

	result, err := h.cycleService.ListSlips(r.Context(), enterpriseID, chi.URLParam(r, "cycleID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payCycleHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	enterpriseID, ok := enterpriseIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Token carries no enterprise")
		return
	}

	result, err := h.cycleService.Summarize(r.Context(), enterpriseID, chi.URLParam(r, "cycleID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payCycleHandlerImpl) GetSlip(w http.ResponseWriter, r *http.Request) {
	enterpriseID, ok := enterpriseIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Token carries no enterprise")
		return
	}

	result, err := h.cycleService.GetSlip(r.Context(), enterpriseID, chi.URLParam(r, "slipID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
