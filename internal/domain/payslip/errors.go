package payslip

import "errors"

var (
	ErrSlipNotFound    = errors.New("pay slip not found")
	ErrSlipAlreadyPaid = errors.New("pay slip has recorded payments and cannot be regenerated")
)
