package http

import (
	"encoding/json"
	"net/http"

	"github.com/opspay/payroll-backend-go/internal/domain/settings"
	"github.com/opspay/payroll-backend-go/internal/handler/http/response"
	settingsservice "github.com/opspay/payroll-backend-go/internal/service/settings"
)

type SettingsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsService *settingsservice.SettingsService
}

func NewSettingsHandler(settingsService *settingsservice.SettingsService) SettingsHandler {
	return &settingsHandlerImpl{settingsService: settingsService}
}

func (h *settingsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	enterpriseID, ok := enterpriseIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Token carries no enterprise")
		return
	}

	result, err := h.settingsService.GetSettings(r.Context(), enterpriseID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *settingsHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	enterpriseID, ok := enterpriseIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Token carries no enterprise")
		return
	}

	var req settings.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.settingsService.UpdateSettings(r.Context(), enterpriseID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settings updated", result)
}
