package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/opspay/payroll-backend-go/internal/domain/payment"
	"github.com/opspay/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type paymentRepository struct {
	db *database.DB
}

func NewPaymentRepository(db *database.DB) payment.PaymentRepository {
	return &paymentRepository{db: db}
}

// Create implements payment.PaymentRepository.
func (r *paymentRepository) Create(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payments (pay_slip_id, amount, method, reference, receipt_number, processed_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		p.PaySlipID, p.Amount, p.Method, p.Reference, p.ReceiptNumber, p.ProcessedBy,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return payment.Payment{}, fmt.Errorf("failed to create payment: %w", err)
	}

	return p, nil
}

// GetByID implements payment.PaymentRepository.
func (r *paymentRepository) GetByID(ctx context.Context, id string) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, pay_slip_id, amount, method, reference, receipt_number, processed_by, voided_at, created_at
		FROM payments
		WHERE id = $1
	`

	var p payment.Payment
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.PaySlipID, &p.Amount, &p.Method, &p.Reference,
		&p.ReceiptNumber, &p.ProcessedBy, &p.VoidedAt, &p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payment.Payment{}, payment.ErrPaymentNotFound
		}
		return payment.Payment{}, fmt.Errorf("failed to get payment: %w", err)
	}

	return p, nil
}

// ListBySlipID implements payment.PaymentRepository.
func (r *paymentRepository) ListBySlipID(ctx context.Context, slipID string) ([]payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, pay_slip_id, amount, method, reference, receipt_number, processed_by, voided_at, created_at
		FROM payments
		WHERE pay_slip_id = $1
		ORDER BY created_at, receipt_number
	`

	rows, err := q.Query(ctx, query, slipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []payment.Payment
	for rows.Next() {
		var p payment.Payment
		if err := rows.Scan(
			&p.ID, &p.PaySlipID, &p.Amount, &p.Method, &p.Reference,
			&p.ReceiptNumber, &p.ProcessedBy, &p.VoidedAt, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

// SumBySlipID implements payment.PaymentRepository.
func (r *paymentRepository) SumBySlipID(ctx context.Context, slipID string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	var sum decimal.Decimal
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE pay_slip_id = $1 AND voided_at IS NULL
	`, slipID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments: %w", err)
	}

	return sum, nil
}

// NextReceiptSequence implements payment.PaymentRepository. The per-day
// counter row is claimed with an atomic upsert, so concurrent transactions
// serialize on it and never see the same value.
func (r *paymentRepository) NextReceiptSequence(ctx context.Context, day time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	var seq int
	err := q.QueryRow(ctx, `
		INSERT INTO receipt_counters (day, last_seq)
		VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET last_seq = receipt_counters.last_seq + 1
		RETURNING last_seq
	`, day.Format("2006-01-02")).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("failed to claim receipt sequence: %w", err)
	}

	return seq, nil
}

// Void implements payment.PaymentRepository.
func (r *paymentRepository) Void(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE payments
		SET voided_at = $2
		WHERE id = $1 AND voided_at IS NULL
	`, id, at)
	if err != nil {
		return fmt.Errorf("failed to void payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing payment from one already voided.
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM payments WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check payment: %w", err)
		}
		if exists {
			return payment.ErrAlreadyVoided
		}
		return payment.ErrPaymentNotFound
	}

	return nil
}
