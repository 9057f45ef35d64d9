package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/opspay/payroll-backend-go/internal/domain/payment"
	"github.com/opspay/payroll-backend-go/internal/handler/http/response"
	paymentservice "github.com/opspay/payroll-backend-go/internal/service/payment"
)

type PaymentHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Void(w http.ResponseWriter, r *http.Request)
}

type paymentHandlerImpl struct {
	ledgerService *paymentservice.LedgerService
}

func NewPaymentHandler(ledgerService *paymentservice.LedgerService) PaymentHandler {
	return &paymentHandlerImpl{ledgerService: ledgerService}
}

func (h *paymentHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	enterpriseID, ok := enterpriseIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Token carries no enterprise")
		return
	}

	var req payment.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ProcessedBy = userIDFromContext(r)

	result, err := h.ledgerService.RecordPayment(r.Context(), enterpriseID, chi.URLParam(r, "slipID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payment recorded", result)
}

func (h *paymentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	enterpriseID, ok := enterpriseIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Token carries no enterprise")
		return
	}

	result, err := h.ledgerService.ListPayments(r.Context(), enterpriseID, chi.URLParam(r, "slipID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *paymentHandlerImpl) Void(w http.ResponseWriter, r *http.Request) {
	enterpriseID, ok := enterpriseIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Token carries no enterprise")
		return
	}

	result, err := h.ledgerService.VoidPayment(r.Context(), enterpriseID, chi.URLParam(r, "paymentID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment voided", result)
}
