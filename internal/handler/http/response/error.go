package response

import (
	"errors"
	"net/http"

	"github.com/opspay/payroll-backend-go/internal/domain/attendance"
	"github.com/opspay/payroll-backend-go/internal/domain/employee"
	"github.com/opspay/payroll-backend-go/internal/domain/paycycle"
	"github.com/opspay/payroll-backend-go/internal/domain/payment"
	"github.com/opspay/payroll-backend-go/internal/domain/payslip"
	"github.com/opspay/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrMissingRate):
		Conflict(w, "Employee lacks the rate required by their contract type")
	case errors.Is(err, employee.ErrInvalidContractType):
		BadRequest(w, "Invalid contract type", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrRecordExists):
		Conflict(w, "Attendance already recorded for this employee and date")
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, "Invalid attendance status", nil)

	// Pay cycle domain errors
	case errors.Is(err, paycycle.ErrCycleNotFound):
		NotFound(w, "Pay cycle not found")
	case errors.Is(err, paycycle.ErrInvalidCycleState):
		Conflict(w, "Operation not allowed in the cycle's current state")
	case errors.Is(err, paycycle.ErrPeriodAlreadyExists):
		Conflict(w, "A cycle already exists for this period")
	case errors.Is(err, paycycle.ErrNoActiveEmployees):
		Conflict(w, "Enterprise has no active employees")
	case errors.Is(err, paycycle.ErrNegativeNetSalary):
		Conflict(w, "Cycle has a pay slip with negative net salary")
	case errors.Is(err, paycycle.ErrCycleClosed):
		Conflict(w, "Pay cycle is closed")
	case errors.Is(err, paycycle.ErrInvalidPeriod):
		BadRequest(w, "Cycle start date must precede end date", nil)

	// Pay slip domain errors
	case errors.Is(err, payslip.ErrSlipNotFound):
		NotFound(w, "Pay slip not found")
	case errors.Is(err, payslip.ErrSlipAlreadyPaid):
		Conflict(w, "Pay slip already has recorded payments")

	// Payment domain errors
	case errors.Is(err, payment.ErrPaymentNotFound):
		NotFound(w, "Payment not found")
	case errors.Is(err, payment.ErrInvalidAmount):
		BadRequest(w, "Payment amount must be positive", nil)
	case errors.Is(err, payment.ErrOverpayment):
		Conflict(w, "Payment would exceed the pay slip's net salary")
	case errors.Is(err, payment.ErrCycleNotApproved):
		Conflict(w, "Payments are only accepted while the cycle is approved")
	case errors.Is(err, payment.ErrAlreadyVoided):
		Conflict(w, "Payment is already voided")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
