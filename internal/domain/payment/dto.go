package payment

import (
	"time"

	"github.com/opspay/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference *string         `json:"reference,omitempty"`
	// ProcessedBy is filled from the request context, not the body.
	ProcessedBy string `json:"-"`
}

func (r *RecordPaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if !Method(r.Method).Valid() {
		errs = append(errs, validator.ValidationError{Field: "method", Message: "unknown payment method"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PaymentResponse struct {
	ID            string          `json:"id"`
	PaySlipID     string          `json:"pay_slip_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Reference     *string         `json:"reference,omitempty"`
	ReceiptNumber string          `json:"receipt_number"`
	ProcessedBy   string          `json:"processed_by"`
	VoidedAt      *string         `json:"voided_at,omitempty"`
	CreatedAt     string          `json:"created_at"`
}

func ToPaymentResponse(p Payment) PaymentResponse {
	var voidedAt *string
	if p.VoidedAt != nil {
		str := p.VoidedAt.Format(time.RFC3339)
		voidedAt = &str
	}

	return PaymentResponse{
		ID:            p.ID,
		PaySlipID:     p.PaySlipID,
		Amount:        p.Amount,
		Method:        string(p.Method),
		Reference:     p.Reference,
		ReceiptNumber: p.ReceiptNumber,
		ProcessedBy:   p.ProcessedBy,
		VoidedAt:      voidedAt,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}

func ToPaymentResponses(payments []Payment) []PaymentResponse {
	result := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		result = append(result, ToPaymentResponse(p))
	}
	return result
}
