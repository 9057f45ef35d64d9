package payment

import "errors"

var (
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrInvalidAmount    = errors.New("payment amount must be positive")
	ErrOverpayment      = errors.New("payment would exceed the pay slip net salary")
	ErrCycleNotApproved = errors.New("payments are only accepted while the cycle is approved")
	ErrAlreadyVoided    = errors.New("payment is already voided")
)
