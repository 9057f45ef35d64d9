package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRepository defines data access methods for the payment ledger.
type PaymentRepository interface {
	Create(ctx context.Context, p Payment) (Payment, error)
	GetByID(ctx context.Context, id string) (Payment, error)
	ListBySlipID(ctx context.Context, slipID string) ([]Payment, error)
	// SumBySlipID aggregates non-voided payment amounts for a slip. Slip
	// totals are always recomputed through this, never patched incrementally.
	SumBySlipID(ctx context.Context, slipID string) (decimal.Decimal, error)
	// NextReceiptSequence atomically claims the next receipt sequence for the
	// given calendar day. Two concurrent callers never receive the same value.
	NextReceiptSequence(ctx context.Context, day time.Time) (int, error)
	Void(ctx context.Context, id string, at time.Time) error
}
