package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractType enum
type ContractType string

const (
	ContractTypeFixed     ContractType = "fixed"
	ContractTypeDailyRate ContractType = "daily_rate"
	ContractTypeHourly    ContractType = "hourly"
)

func (t ContractType) Valid() bool {
	switch t {
	case ContractTypeFixed, ContractTypeDailyRate, ContractTypeHourly:
		return true
	}
	return false
}

// Employee belongs to exactly one enterprise. Of the three compensation
// parameters only the one matching ContractType is consulted; the others are
// ignored.
type Employee struct {
	ID           string
	EnterpriseID string
	FullName     string
	ContractType ContractType
	BaseSalary   *decimal.Decimal
	DailyRate    *decimal.Decimal
	HourlyRate   *decimal.Decimal
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Rate returns the compensation parameter the contract type requires, or
// ErrMissingRate when it is absent or not positive. A missing rate must
// surface before any pay slip is computed, never default to zero.
func (e Employee) Rate() (decimal.Decimal, error) {
	var rate *decimal.Decimal
	switch e.ContractType {
	case ContractTypeFixed:
		rate = e.BaseSalary
	case ContractTypeDailyRate:
		rate = e.DailyRate
	case ContractTypeHourly:
		rate = e.HourlyRate
	default:
		return decimal.Zero, ErrInvalidContractType
	}
	if rate == nil || !rate.IsPositive() {
		return decimal.Zero, ErrMissingRate
	}
	return *rate, nil
}
