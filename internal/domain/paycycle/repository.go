package paycycle

import "context"

// PayCycleRepository defines data access methods for payroll cycles.
type PayCycleRepository interface {
	Create(ctx context.Context, cycle PayCycle) (PayCycle, error)
	GetByID(ctx context.Context, id string) (PayCycle, error)
	ListByEnterpriseID(ctx context.Context, enterpriseID string) ([]PayCycle, error)
	// UpdateState persists a state change. Callers validate the transition;
	// the repository only writes it.
	UpdateState(ctx context.Context, id string, state State) error
}
