package payslip

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaySlipRepository defines data access methods for pay slips.
type PaySlipRepository interface {
	// Upsert creates the slip for (cycle, employee) or replaces its computed
	// amounts when regenerating.
	Upsert(ctx context.Context, slip PaySlip) (PaySlip, error)
	GetByID(ctx context.Context, id string) (PaySlip, error)
	// GetByIDForUpdate locks the slip row for the duration of the surrounding
	// transaction so the overpayment check-then-insert is atomic.
	GetByIDForUpdate(ctx context.Context, id string) (PaySlip, error)
	ListByCycleID(ctx context.Context, cycleID string) ([]PaySlip, error)
	// UpdateDerived writes the recomputed ledger aggregate for a slip.
	UpdateDerived(ctx context.Context, id string, totalPaid decimal.Decimal, status PaymentStatus) error
}
