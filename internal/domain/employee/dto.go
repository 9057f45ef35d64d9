package employee

import (
	"github.com/opspay/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	FullName     string           `json:"full_name"`
	ContractType string           `json:"contract_type"`
	BaseSalary   *decimal.Decimal `json:"base_salary,omitempty"`
	DailyRate    *decimal.Decimal `json:"daily_rate,omitempty"`
	HourlyRate   *decimal.Decimal `json:"hourly_rate,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if !ContractType(r.ContractType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "contract_type", Message: "must be 'fixed', 'daily_rate' or 'hourly'"})
	}

	// The parameter matching the contract type must be a positive number.
	switch ContractType(r.ContractType) {
	case ContractTypeFixed:
		if r.BaseSalary == nil || !r.BaseSalary.IsPositive() {
			errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be positive for fixed contracts"})
		}
	case ContractTypeDailyRate:
		if r.DailyRate == nil || !r.DailyRate.IsPositive() {
			errs = append(errs, validator.ValidationError{Field: "daily_rate", Message: "must be positive for daily-rate contracts"})
		}
	case ContractTypeHourly:
		if r.HourlyRate == nil || !r.HourlyRate.IsPositive() {
			errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be positive for hourly contracts"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEmployeeRequest replaces the employee's name, contract type and
// compensation parameters. Slips already generated keep their amounts; the
// next bulletin run picks the new terms up.
type UpdateEmployeeRequest struct {
	FullName     string           `json:"full_name"`
	ContractType string           `json:"contract_type"`
	BaseSalary   *decimal.Decimal `json:"base_salary,omitempty"`
	DailyRate    *decimal.Decimal `json:"daily_rate,omitempty"`
	HourlyRate   *decimal.Decimal `json:"hourly_rate,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	c := CreateEmployeeRequest{
		FullName:     r.FullName,
		ContractType: r.ContractType,
		BaseSalary:   r.BaseSalary,
		DailyRate:    r.DailyRate,
		HourlyRate:   r.HourlyRate,
	}
	return c.Validate()
}

type EmployeeResponse struct {
	ID           string           `json:"id"`
	EnterpriseID string           `json:"enterprise_id"`
	FullName     string           `json:"full_name"`
	ContractType string           `json:"contract_type"`
	BaseSalary   *decimal.Decimal `json:"base_salary,omitempty"`
	DailyRate    *decimal.Decimal `json:"daily_rate,omitempty"`
	HourlyRate   *decimal.Decimal `json:"hourly_rate,omitempty"`
	Active       bool             `json:"active"`
}

func ToEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		EnterpriseID: e.EnterpriseID,
		FullName:     e.FullName,
		ContractType: string(e.ContractType),
		BaseSalary:   e.BaseSalary,
		DailyRate:    e.DailyRate,
		HourlyRate:   e.HourlyRate,
		Active:       e.Active,
	}
}

func ToEmployeeResponses(employees []Employee) []EmployeeResponse {
	result := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		result = append(result, ToEmployeeResponse(e))
	}
	return result
}
