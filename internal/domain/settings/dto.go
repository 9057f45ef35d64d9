package settings

import (
	"time"

	"github.com/opspay/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpdateSettingsRequest struct {
	AbsencePenalty decimal.Decimal `json:"absence_penalty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.AbsencePenalty.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "absence_penalty", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SettingsResponse struct {
	EnterpriseID   string          `json:"enterprise_id"`
	AbsencePenalty decimal.Decimal `json:"absence_penalty"`
	// Default reports whether the values come from configuration rather than
	// an enterprise override.
	Default   bool    `json:"default"`
	UpdatedAt *string `json:"updated_at,omitempty"`
}

func ToSettingsResponse(s PayrollSettings, isDefault bool) SettingsResponse {
	resp := SettingsResponse{
		EnterpriseID:   s.EnterpriseID,
		AbsencePenalty: s.AbsencePenalty,
		Default:        isDefault,
	}
	if !isDefault && !s.UpdatedAt.IsZero() {
		str := s.UpdatedAt.Format(time.RFC3339)
		resp.UpdatedAt = &str
	}
	return resp
}
