package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/opspay/payroll-backend-go/internal/domain/paycycle"
)

type payCycleRepository struct {
	store *Store
}

func NewPayCycleRepository(store *Store) paycycle.PayCycleRepository {
	return &payCycleRepository{store: store}
}

func (r *payCycleRepository) Create(ctx context.Context, cycle paycycle.PayCycle) (paycycle.PayCycle, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.cycles {
		if existing.EnterpriseID == cycle.EnterpriseID && existing.Period == cycle.Period {
			return paycycle.PayCycle{}, paycycle.ErrPeriodAlreadyExists
		}
	}

	now := time.Now()
	if cycle.ID == "" {
		cycle.ID = uuid.NewString()
	}
	cycle.CreatedAt = now
	cycle.UpdatedAt = now
	r.store.cycles[cycle.ID] = cycle
	return cycle, nil
}

func (r *payCycleRepository) GetByID(ctx context.Context, id string) (paycycle.PayCycle, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	cycle, ok := r.store.cycles[id]
	if !ok {
		return paycycle.PayCycle{}, paycycle.ErrCycleNotFound
	}
	return cycle, nil
}

func (r *payCycleRepository) ListByEnterpriseID(ctx context.Context, enterpriseID string) ([]paycycle.PayCycle, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []paycycle.PayCycle
	for _, cycle := range r.store.cycles {
		if cycle.EnterpriseID == enterpriseID {
			out = append(out, cycle)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r *payCycleRepository) UpdateState(ctx context.Context, id string, state paycycle.State) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cycle, ok := r.store.cycles[id]
	if !ok {
		return paycycle.ErrCycleNotFound
	}
	cycle.State = state
	cycle.UpdatedAt = time.Now()
	r.store.cycles[id] = cycle
	return nil
}
