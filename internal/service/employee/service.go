package employee

import (
	"context"
	"fmt"

	"github.com/opspay/payroll-backend-go/internal/domain/employee"
)

// EmployeeService manages the enterprise's employee directory.
type EmployeeService struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, enterpriseID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.Create(ctx, employee.Employee{
		EnterpriseID: enterpriseID,
		FullName:     req.FullName,
		ContractType: employee.ContractType(req.ContractType),
		BaseSalary:   req.BaseSalary,
		DailyRate:    req.DailyRate,
		HourlyRate:   req.HourlyRate,
		Active:       true,
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee.ToEmployeeResponse(emp), nil
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, enterpriseID, employeeID string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.Update(ctx, employee.Employee{
		ID:           employeeID,
		EnterpriseID: enterpriseID,
		FullName:     req.FullName,
		ContractType: employee.ContractType(req.ContractType),
		BaseSalary:   req.BaseSalary,
		DailyRate:    req.DailyRate,
		HourlyRate:   req.HourlyRate,
	})
	if err != nil {
		if err == employee.ErrEmployeeNotFound {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return employee.ToEmployeeResponse(emp), nil
}

func (s *EmployeeService) GetEmployee(ctx context.Context, enterpriseID, employeeID string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID, enterpriseID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToEmployeeResponse(emp), nil
}

// ListEmployees returns the enterprise's active employees.
func (s *EmployeeService) ListEmployees(ctx context.Context, enterpriseID string) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.GetActiveByEnterpriseID(ctx, enterpriseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employee.ToEmployeeResponses(employees), nil
}

// DeactivateEmployee excludes the employee from future bulletin runs. Slips
// already generated for them are untouched.
func (s *EmployeeService) DeactivateEmployee(ctx context.Context, enterpriseID, employeeID string) error {
	return s.employeeRepo.Deactivate(ctx, employeeID, enterpriseID)
}
