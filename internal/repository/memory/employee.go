package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/opspay/payroll-backend-go/internal/domain/employee"
)

type employeeRepository struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepository{store: store}
}

func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}
	emp.CreatedAt = now
	emp.UpdatedAt = now
	r.store.employees[emp.ID] = emp
	return emp, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string, enterpriseID string) (employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	emp, ok := r.store.employees[id]
	if !ok || emp.EnterpriseID != enterpriseID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *employeeRepository) GetActiveByEnterpriseID(ctx context.Context, enterpriseID string) ([]employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []employee.Employee
	for _, emp := range r.store.employees {
		if emp.EnterpriseID == enterpriseID && emp.Active {
			out = append(out, emp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *employeeRepository) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.employees[emp.ID]
	if !ok || current.EnterpriseID != emp.EnterpriseID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	emp.Active = current.Active
	emp.CreatedAt = current.CreatedAt
	emp.UpdatedAt = time.Now()
	r.store.employees[emp.ID] = emp
	return emp, nil
}

func (r *employeeRepository) ListEnterpriseIDs(ctx context.Context) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, emp := range r.store.employees {
		if emp.Active && !seen[emp.EnterpriseID] {
			seen[emp.EnterpriseID] = true
			out = append(out, emp.EnterpriseID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *employeeRepository) Deactivate(ctx context.Context, id string, enterpriseID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	emp, ok := r.store.employees[id]
	if !ok || emp.EnterpriseID != enterpriseID {
		return employee.ErrEmployeeNotFound
	}
	emp.Active = false
	emp.UpdatedAt = time.Now()
	r.store.employees[id] = emp
	return nil
}
