package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/opspay/payroll-backend-go/internal/domain/paycycle"
	"github.com/opspay/payroll-backend-go/internal/domain/payment"
	"github.com/opspay/payroll-backend-go/internal/domain/payslip"
	"github.com/opspay/payroll-backend-go/internal/pkg/database"
	"github.com/opspay/payroll-backend-go/internal/pkg/locking"
)

// LedgerService records and voids payments against pay slips. The ledger is
// append-only: a payment is never edited or deleted, only voided, and slip
// totals are always recomputed from the surviving entries.
type LedgerService struct {
	txm         database.TxManager
	paymentRepo payment.PaymentRepository
	slipRepo    payslip.PaySlipRepository
	cycleRepo   paycycle.PayCycleRepository
	locks       *locking.KeyedMutex
	now         func() time.Time
}

func NewLedgerService(
	txm database.TxManager,
	paymentRepo payment.PaymentRepository,
	slipRepo payslip.PaySlipRepository,
	cycleRepo paycycle.PayCycleRepository,
	locks *locking.KeyedMutex,
) *LedgerService {
	return &LedgerService{
		txm:         txm,
		paymentRepo: paymentRepo,
		slipRepo:    slipRepo,
		cycleRepo:   cycleRepo,
		locks:       locks,
		now:         time.Now,
	}
}

// RecordPayment appends a payment to a slip's ledger. The cycle must be
// approved, and the ledger sum plus the new amount may never exceed the slip's
// net salary; the check and the insert are atomic, so two concurrent payments
// cannot jointly overpay. The receipt number is claimed inside the same
// transaction and is unique system-wide.
func (s *LedgerService) RecordPayment(ctx context.Context, enterpriseID, slipID string, req payment.RecordPaymentRequest) (payment.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return payment.PaymentResponse{}, err
	}

	slip, cycle, err := s.getScopedSlip(ctx, enterpriseID, slipID)
	if err != nil {
		return payment.PaymentResponse{}, err
	}

	s.locks.Lock(cycle.ID)
	defer s.locks.Unlock(cycle.ID)

	var created payment.Payment
	err = s.txm.WithinTx(ctx, func(ctx context.Context) error {
		slip, err := s.slipRepo.GetByIDForUpdate(ctx, slip.ID)
		if err != nil {
			return err
		}
		cycle, err := s.cycleRepo.GetByID(ctx, slip.CycleID)
		if err != nil {
			return fmt.Errorf("failed to get cycle for slip: %w", err)
		}
		if cycle.State != paycycle.StateApproved {
			return payment.ErrCycleNotApproved
		}

		paid, err := s.paymentRepo.SumBySlipID(ctx, slip.ID)
		if err != nil {
			return fmt.Errorf("failed to sum slip payments: %w", err)
		}
		if paid.Add(req.Amount).GreaterThan(slip.NetSalary) {
			return payment.ErrOverpayment
		}

		day := s.now()
		seq, err := s.paymentRepo.NextReceiptSequence(ctx, day)
		if err != nil {
			return fmt.Errorf("failed to claim receipt sequence: %w", err)
		}

		created, err = s.paymentRepo.Create(ctx, payment.Payment{
			PaySlipID:     slip.ID,
			Amount:        req.Amount,
			Method:        payment.Method(req.Method),
			Reference:     req.Reference,
			ReceiptNumber: payment.FormatReceiptNumber(day, seq),
			ProcessedBy:   req.ProcessedBy,
			CreatedAt:     day,
		})
		if err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		total := paid.Add(req.Amount)
		return s.slipRepo.UpdateDerived(ctx, slip.ID, total, payslip.DeriveStatus(total, slip.NetSalary))
	})
	if err != nil {
		return payment.PaymentResponse{}, err
	}

	return payment.ToPaymentResponse(created), nil
}

// VoidPayment cancels a ledger entry. The row and its receipt number survive
// for audit; the slip's total and status drop back to what the remaining
// entries add up to. Payments of a closed cycle cannot be voided.
func (s *LedgerService) VoidPayment(ctx context.Context, enterpriseID, paymentID string) (payment.PaymentResponse, error) {
	p, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return payment.PaymentResponse{}, err
	}

	slip, cycle, err := s.getScopedSlip(ctx, enterpriseID, p.PaySlipID)
	if err != nil {
		// Hide payments of foreign enterprises entirely.
		if err == payslip.ErrSlipNotFound {
			return payment.PaymentResponse{}, payment.ErrPaymentNotFound
		}
		return payment.PaymentResponse{}, err
	}

	s.locks.Lock(cycle.ID)
	defer s.locks.Unlock(cycle.ID)

	var voided payment.Payment
	err = s.txm.WithinTx(ctx, func(ctx context.Context) error {
		cycle, err := s.cycleRepo.GetByID(ctx, cycle.ID)
		if err != nil {
			return fmt.Errorf("failed to get cycle for payment: %w", err)
		}
		if cycle.State == paycycle.StateClosed {
			return paycycle.ErrCycleClosed
		}

		at := s.now()
		if err := s.paymentRepo.Void(ctx, paymentID, at); err != nil {
			return err
		}

		total, err := s.paymentRepo.SumBySlipID(ctx, slip.ID)
		if err != nil {
			return fmt.Errorf("failed to sum slip payments: %w", err)
		}
		if err := s.slipRepo.UpdateDerived(ctx, slip.ID, total, payslip.DeriveStatus(total, slip.NetSalary)); err != nil {
			return err
		}

		voided, err = s.paymentRepo.GetByID(ctx, paymentID)
		return err
	})
	if err != nil {
		return payment.PaymentResponse{}, err
	}

	return payment.ToPaymentResponse(voided), nil
}

// ListPayments returns a slip's full ledger, voided entries included, oldest
// first.
func (s *LedgerService) ListPayments(ctx context.Context, enterpriseID, slipID string) ([]payment.PaymentResponse, error) {
	slip, _, err := s.getScopedSlip(ctx, enterpriseID, slipID)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.ListBySlipID(ctx, slip.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payment.ToPaymentResponses(payments), nil
}

// getScopedSlip resolves a slip and its cycle, hiding both from foreign
// enterprises.
func (s *LedgerService) getScopedSlip(ctx context.Context, enterpriseID, slipID string) (payslip.PaySlip, paycycle.PayCycle, error) {
	slip, err := s.slipRepo.GetByID(ctx, slipID)
	if err != nil {
		return payslip.PaySlip{}, paycycle.PayCycle{}, err
	}
	cycle, err := s.cycleRepo.GetByID(ctx, slip.CycleID)
	if err != nil {
		return payslip.PaySlip{}, paycycle.PayCycle{}, fmt.Errorf("failed to get cycle for slip: %w", err)
	}
	if cycle.EnterpriseID != enterpriseID {
		return payslip.PaySlip{}, paycycle.PayCycle{}, payslip.ErrSlipNotFound
	}
	return slip, cycle, nil
}
