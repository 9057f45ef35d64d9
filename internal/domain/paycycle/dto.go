package paycycle

import (
	"time"

	"github.com/opspay/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateCycleRequest struct {
	Period    string `json:"period"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *CreateCycleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Period) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "is required"})
	}
	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if okStart && okEnd && !start.Before(end) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must precede end_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CycleResponse struct {
	ID           string `json:"id"`
	EnterpriseID string `json:"enterprise_id"`
	Period       string `json:"period"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	State        string `json:"state"`
	CreatedAt    string `json:"created_at"`
}

// CycleSummaryResponse aggregates a cycle's slips into period totals.
type CycleSummaryResponse struct {
	CycleID          string          `json:"cycle_id"`
	Period           string          `json:"period"`
	State            string          `json:"state"`
	SlipCount        int             `json:"slip_count"`
	TotalGross       decimal.Decimal `json:"total_gross"`
	TotalDeduction   decimal.Decimal `json:"total_deduction"`
	TotalNet         decimal.Decimal `json:"total_net"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	SlipsByStatus    map[string]int  `json:"slips_by_status"`
}

func ToCycleResponse(c PayCycle) CycleResponse {
	return CycleResponse{
		ID:           c.ID,
		EnterpriseID: c.EnterpriseID,
		Period:       c.Period,
		StartDate:    c.StartDate.Format("2006-01-02"),
		EndDate:      c.EndDate.Format("2006-01-02"),
		State:        string(c.State),
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
}
