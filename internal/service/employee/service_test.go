package employee

import (
	"context"
	"testing"

	"github.com/opspay/payroll-backend-go/internal/domain/employee"
	"github.com/opspay/payroll-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEnterpriseID = "ent-acme"

func newEmployeeService(t *testing.T) *EmployeeService {
	t.Helper()
	store := memory.NewStore()
	return NewEmployeeService(memory.NewEmployeeRepository(store))
}

func TestEmployeeService_CreateEmployee_Success(t *testing.T) {
	t.Parallel()
	service := newEmployeeService(t)

	base := decimal.NewFromInt(300000)
	resp, err := service.CreateEmployee(context.Background(), testEnterpriseID, employee.CreateEmployeeRequest{
		FullName:     "Awa Diop",
		ContractType: "fixed",
		BaseSalary:   &base,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, testEnterpriseID, resp.EnterpriseID)
	assert.True(t, resp.Active)
}

func TestEmployeeService_CreateEmployee_MissingRate(t *testing.T) {
	t.Parallel()
	service := newEmployeeService(t)

	_, err := service.CreateEmployee(context.Background(), testEnterpriseID, employee.CreateEmployeeRequest{
		FullName:     "Awa Diop",
		ContractType: "daily_rate",
	})
	assert.Error(t, err)
}

func TestEmployeeService_UpdateEmployee_ChangesContractTerms(t *testing.T) {
	t.Parallel()
	service := newEmployeeService(t)
	ctx := context.Background()

	base := decimal.NewFromInt(300000)
	created, err := service.CreateEmployee(ctx, testEnterpriseID, employee.CreateEmployeeRequest{
		FullName:     "Awa Diop",
		ContractType: "fixed",
		BaseSalary:   &base,
	})
	require.NoError(t, err)

	rate := decimal.NewFromInt(5000)
	updated, err := service.UpdateEmployee(ctx, testEnterpriseID, created.ID, employee.UpdateEmployeeRequest{
		FullName:     "Awa Diop",
		ContractType: "daily_rate",
		DailyRate:    &rate,
	})
	require.NoError(t, err)
	assert.Equal(t, "daily_rate", updated.ContractType)
	assert.True(t, updated.DailyRate.Equal(rate))
	assert.True(t, updated.Active)
}

func TestEmployeeService_UpdateEmployee_ForeignEnterpriseHidden(t *testing.T) {
	t.Parallel()
	service := newEmployeeService(t)
	ctx := context.Background()

	base := decimal.NewFromInt(300000)
	created, err := service.CreateEmployee(ctx, testEnterpriseID, employee.CreateEmployeeRequest{
		FullName:     "Awa Diop",
		ContractType: "fixed",
		BaseSalary:   &base,
	})
	require.NoError(t, err)

	_, err = service.UpdateEmployee(ctx, "ent-other", created.ID, employee.UpdateEmployeeRequest{
		FullName:     "Awa Diop",
		ContractType: "fixed",
		BaseSalary:   &base,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeService_DeactivateEmployee_RemovedFromListing(t *testing.T) {
	t.Parallel()
	service := newEmployeeService(t)
	ctx := context.Background()

	base := decimal.NewFromInt(300000)
	created, err := service.CreateEmployee(ctx, testEnterpriseID, employee.CreateEmployeeRequest{
		FullName:     "Awa Diop",
		ContractType: "fixed",
		BaseSalary:   &base,
	})
	require.NoError(t, err)

	require.NoError(t, service.DeactivateEmployee(ctx, testEnterpriseID, created.ID))

	list, err := service.ListEmployees(ctx, testEnterpriseID)
	require.NoError(t, err)
	assert.Empty(t, list)

	// The record itself survives for existing slips.
	got, err := service.GetEmployee(ctx, testEnterpriseID, created.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}
