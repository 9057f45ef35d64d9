package payment

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Method enum
type Method string

const (
	MethodCash         Method = "cash"
	MethodBankTransfer Method = "bank_transfer"
	MethodCheque       Method = "cheque"
	MethodMobileMoney  Method = "mobile_money"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCheque, MethodMobileMoney:
		return true
	}
	return false
}

// Payment is one append-only ledger entry against a pay slip. Voided entries
// keep their row and receipt number but are excluded from ledger sums.
type Payment struct {
	ID            string
	PaySlipID     string
	Amount        decimal.Decimal
	Method        Method
	Reference     *string
	ReceiptNumber string
	ProcessedBy   string
	VoidedAt      *time.Time
	CreatedAt     time.Time
}

func (p Payment) Voided() bool {
	return p.VoidedAt != nil
}

// FormatReceiptNumber builds the system-wide unique receipt number for the
// seq-th payment of the given calendar day: REC<YYYYMMDD><NNNN>.
func FormatReceiptNumber(day time.Time, seq int) string {
	return fmt.Sprintf("REC%s%04d", day.Format("20060102"), seq)
}
