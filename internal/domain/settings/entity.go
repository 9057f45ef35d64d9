package settings

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollSettings overrides the engine defaults for one enterprise. An
// enterprise without a row falls back to the configured defaults.
type PayrollSettings struct {
	EnterpriseID   string
	AbsencePenalty decimal.Decimal
	UpdatedAt      time.Time
}
