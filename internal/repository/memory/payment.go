package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/opspay/payroll-backend-go/internal/domain/payment"
	"github.com/shopspring/decimal"
)

type paymentRepository struct {
	store *Store
}

func NewPaymentRepository(store *Store) payment.PaymentRepository {
	return &paymentRepository{store: store}
}

func (r *paymentRepository) Create(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	r.store.payments[p.ID] = p
	return p, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (payment.Payment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.payments[id]
	if !ok {
		return payment.Payment{}, payment.ErrPaymentNotFound
	}
	return p, nil
}

func (r *paymentRepository) ListBySlipID(ctx context.Context, slipID string) ([]payment.Payment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []payment.Payment
	for _, p := range r.store.payments {
		if p.PaySlipID == slipID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ReceiptNumber < out[j].ReceiptNumber
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *paymentRepository) SumBySlipID(ctx context.Context, slipID string) (decimal.Decimal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	sum := decimal.Zero
	for _, p := range r.store.payments {
		if p.PaySlipID == slipID && !p.Voided() {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

func (r *paymentRepository) NextReceiptSequence(ctx context.Context, day time.Time) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := day.Format("20060102")
	r.store.receiptSeq[key]++
	return r.store.receiptSeq[key], nil
}

func (r *paymentRepository) Void(ctx context.Context, id string, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.payments[id]
	if !ok {
		return payment.ErrPaymentNotFound
	}
	if p.Voided() {
		return payment.ErrAlreadyVoided
	}
	p.VoidedAt = &at
	r.store.payments[id] = p
	return nil
}
