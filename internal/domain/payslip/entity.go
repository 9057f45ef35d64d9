package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus enum, always derived from the payment ledger.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// DeriveStatus computes the payment status from the ledger sum. The status is
// never stored independently of this relationship: pending iff nothing has
// been paid, paid once the ledger covers the net amount, partial in between.
func DeriveStatus(totalPaid, netSalary decimal.Decimal) PaymentStatus {
	if totalPaid.IsZero() {
		return PaymentStatusPending
	}
	if totalPaid.GreaterThanOrEqual(netSalary) {
		return PaymentStatusPaid
	}
	return PaymentStatusPartial
}

// PaySlip is one employee's computed payroll result within a cycle. There is
// exactly one slip per (cycle, employee); TotalPaid and Status are recomputed
// from the payment ledger, never incremented in place.
type PaySlip struct {
	ID              string
	CycleID         string
	EmployeeID      string
	GrossSalary     decimal.Decimal
	NetSalary       decimal.Decimal
	Deduction       decimal.Decimal
	DeductionDetail map[string]decimal.Decimal
	WorkedDays      int
	AbsentDays      int
	WorkedHours     decimal.Decimal
	TotalPaid       decimal.Decimal
	Status          PaymentStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName *string
}

// Outstanding returns the unpaid remainder, never negative.
func (s PaySlip) Outstanding() decimal.Decimal {
	rest := s.NetSalary.Sub(s.TotalPaid)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}
