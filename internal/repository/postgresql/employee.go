package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/opspay/payroll-backend-go/internal/domain/employee"
	"github.com/opspay/payroll-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (enterprise_id, full_name, contract_type, base_salary, daily_rate, hourly_rate, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.EnterpriseID, emp.FullName, emp.ContractType,
		emp.BaseSalary, emp.DailyRate, emp.HourlyRate, emp.Active,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string, enterpriseID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, enterprise_id, full_name, contract_type, base_salary, daily_rate, hourly_rate, active, created_at, updated_at
		FROM employees
		WHERE id = $1 AND enterprise_id = $2
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id, enterpriseID).Scan(
		&emp.ID, &emp.EnterpriseID, &emp.FullName, &emp.ContractType,
		&emp.BaseSalary, &emp.DailyRate, &emp.HourlyRate, &emp.Active,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// GetActiveByEnterpriseID implements employee.EmployeeRepository.
func (r *employeeRepository) GetActiveByEnterpriseID(ctx context.Context, enterpriseID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, enterprise_id, full_name, contract_type, base_salary, daily_rate, hourly_rate, active, created_at, updated_at
		FROM employees
		WHERE enterprise_id = $1 AND active = true
		ORDER BY full_name, id
	`

	rows, err := q.Query(ctx, query, enterpriseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.EnterpriseID, &emp.FullName, &emp.ContractType,
			&emp.BaseSalary, &emp.DailyRate, &emp.HourlyRate, &emp.Active,
			&emp.CreatedAt, &emp.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET full_name = $3, contract_type = $4, base_salary = $5, daily_rate = $6, hourly_rate = $7, updated_at = NOW()
		WHERE id = $1 AND enterprise_id = $2
		RETURNING active, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.ID, emp.EnterpriseID, emp.FullName, emp.ContractType,
		emp.BaseSalary, emp.DailyRate, emp.HourlyRate,
	).Scan(&emp.Active, &emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return emp, nil
}

// ListEnterpriseIDs implements employee.EmployeeRepository.
func (r *employeeRepository) ListEnterpriseIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT DISTINCT enterprise_id FROM employees WHERE active = true ORDER BY enterprise_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list enterprises: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan enterprise id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// Deactivate implements employee.EmployeeRepository.
func (r *employeeRepository) Deactivate(ctx context.Context, id string, enterpriseID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE employees
		SET active = false, updated_at = NOW()
		WHERE id = $1 AND enterprise_id = $2
	`, id, enterpriseID)
	if err != nil {
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
