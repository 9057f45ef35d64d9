package employee

import "context"

// EmployeeRepository defines data access methods for the employee directory.
// All methods take enterpriseID to prevent cross-enterprise data access.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string, enterpriseID string) (Employee, error)
	GetActiveByEnterpriseID(ctx context.Context, enterpriseID string) ([]Employee, error)
	Update(ctx context.Context, emp Employee) (Employee, error)
	ListEnterpriseIDs(ctx context.Context) ([]string, error)
	Deactivate(ctx context.Context, id string, enterpriseID string) error
}
