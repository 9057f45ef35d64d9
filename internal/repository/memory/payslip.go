package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/opspay/payroll-backend-go/internal/domain/payslip"
	"github.com/shopspring/decimal"
)

type paySlipRepository struct {
	store *Store
}

func NewPaySlipRepository(store *Store) payslip.PaySlipRepository {
	return &paySlipRepository{store: store}
}

func ownerKey(cycleID, employeeID string) string {
	return cycleID + "|" + employeeID
}

func (r *paySlipRepository) Upsert(ctx context.Context, slip payslip.PaySlip) (payslip.PaySlip, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	key := ownerKey(slip.CycleID, slip.EmployeeID)
	if existingID, ok := r.store.slipByOwner[key]; ok {
		existing := r.store.slips[existingID]
		slip.ID = existing.ID
		slip.CreatedAt = existing.CreatedAt
	} else {
		slip.ID = uuid.NewString()
		slip.CreatedAt = now
	}
	slip.UpdatedAt = now
	slip.DeductionDetail = copyMap(slip.DeductionDetail)

	r.store.slips[slip.ID] = slip
	r.store.slipByOwner[key] = slip.ID
	return slip, nil
}

func (r *paySlipRepository) GetByID(ctx context.Context, id string) (payslip.PaySlip, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	slip, ok := r.store.slips[id]
	if !ok {
		return payslip.PaySlip{}, payslip.ErrSlipNotFound
	}
	slip.DeductionDetail = copyMap(slip.DeductionDetail)
	return slip, nil
}

// GetByIDForUpdate carries row-locking semantics in PostgreSQL; here the
// surrounding WithinTx already serializes writers.
func (r *paySlipRepository) GetByIDForUpdate(ctx context.Context, id string) (payslip.PaySlip, error) {
	return r.GetByID(ctx, id)
}

func (r *paySlipRepository) ListByCycleID(ctx context.Context, cycleID string) ([]payslip.PaySlip, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []payslip.PaySlip
	for _, slip := range r.store.slips {
		if slip.CycleID == cycleID {
			slip.DeductionDetail = copyMap(slip.DeductionDetail)
			out = append(out, slip)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

func (r *paySlipRepository) UpdateDerived(ctx context.Context, id string, totalPaid decimal.Decimal, status payslip.PaymentStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	slip, ok := r.store.slips[id]
	if !ok {
		return payslip.ErrSlipNotFound
	}
	slip.TotalPaid = totalPaid
	slip.Status = status
	slip.UpdatedAt = time.Now()
	r.store.slips[id] = slip
	return nil
}
