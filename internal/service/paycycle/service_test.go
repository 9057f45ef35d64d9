package paycycle

import (
	"context"
	"testing"
	"time"

	"github.com/opspay/payroll-backend-go/internal/domain/attendance"
	"github.com/opspay/payroll-backend-go/internal/domain/employee"
	"github.com/opspay/payroll-backend-go/internal/domain/paycycle"
	"github.com/opspay/payroll-backend-go/internal/domain/settings"
	"github.com/opspay/payroll-backend-go/internal/pkg/locking"
	"github.com/opspay/payroll-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEnterpriseID = "ent-acme"

type cycleFixture struct {
	service        *CycleService
	store          *memory.Store
	settingsRepo   settings.SettingsRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
}

func newCycleFixture(t *testing.T) *cycleFixture {
	t.Helper()
	store := memory.NewStore()
	employeeRepo := memory.NewEmployeeRepository(store)
	attendanceRepo := memory.NewAttendanceRepository(store)
	cycleRepo := memory.NewPayCycleRepository(store)
	slipRepo := memory.NewPaySlipRepository(store)

	settingsRepo := memory.NewSettingsRepository(store)
	service := NewCycleService(store, cycleRepo, slipRepo, employeeRepo, attendanceRepo, settingsRepo, decimal.NewFromInt(15000), locking.NewKeyedMutex())

	return &cycleFixture{
		service:        service,
		store:          store,
		settingsRepo:   settingsRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
	}
}

func (f *cycleFixture) seedFixedEmployee(t *testing.T, name string, baseSalary int64) employee.Employee {
	t.Helper()
	base := decimal.NewFromInt(baseSalary)
	emp, err := f.employeeRepo.Create(context.Background(), employee.Employee{
		EnterpriseID: testEnterpriseID,
		FullName:     name,
		ContractType: employee.ContractTypeFixed,
		BaseSalary:   &base,
		Active:       true,
	})
	require.NoError(t, err)
	return emp
}

func (f *cycleFixture) seedAttendance(t *testing.T, employeeID string, date string, status attendance.Status) {
	t.Helper()
	day, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	_, err = f.attendanceRepo.Create(context.Background(), attendance.AttendanceRecord{
		EmployeeID:   employeeID,
		EnterpriseID: testEnterpriseID,
		Date:         day,
		Status:       status,
	})
	require.NoError(t, err)
}

func (f *cycleFixture) createAugustCycle(t *testing.T) paycycle.CycleResponse {
	t.Helper()
	cycle, err := f.service.CreateCycle(context.Background(), testEnterpriseID, paycycle.CreateCycleRequest{
		Period:    "2025-08",
		StartDate: "2025-08-01",
		EndDate:   "2025-08-31",
	})
	require.NoError(t, err)
	return cycle
}

func TestCycleService_CreateCycle_Success(t *testing.T) {
	t.Parallel()
	f := newCycleFixture(t)

	cycle := f.createAugustCycle(t)

	assert.NotEmpty(t, cycle.ID)
	assert.Equal(t, testEnterpriseID, cycle.EnterpriseID)
	assert.Equal(t, string(paycycle.StateDraft), cycle.State)
}

func TestCycleService_CreateCycle_DuplicatePeriod(t *testing.T) {
	t.Parallel()
	f := newCycleFixture(t)
	f.createAugustCycle(t)

	_, err := f.service.CreateCycle(context.Background(), testEnterpriseID, paycycle.CreateCycleRequest{
		Period:    "2025-08",
		StartDate: "2025-08-01",
		EndDate:   "2025-08-31",
	})
	assert.ErrorIs(t, err, paycycle.ErrPeriodAlreadyExists)
}

func TestCycleService_CreateCycle_StartAfterEnd(t *testing.T) {
	t.Parallel()
	f := newCycleFixture(t)

	_, err := f.service.CreateCycle(context.Background(), testEnterpriseID, paycycle.CreateCycleRequest{
		Period:    "2025-08",
		StartDate: "2025-08-31",
		EndDate:   "2025-08-01",
	})
	assert.Error(t, err)
}

func TestCycleService_GenerateBulletins_FixedWithAbsences(t *testing.T) {
	t.Parallel()
	f := newCycleFixture(t)
	ctx := context.Background()

	emp := f.seedFixedEmployee(t, "Awa Diop", 300000)
	f.seedAttendance(t, emp.ID, "2025-08-04", attendance.StatusAbsent)
	f.seedAttendance(t, emp.ID, "2025-08-05", attendance.StatusAbsent)
	f.seedAttendance(t, emp.ID, "2025-08-06", attendance.StatusPresent)

	cycle := f.createAugustCycle(t)
	slips, err := f.service.GenerateBulletins(ctx, testEnterpriseID, cycle.ID)
	require.NoError(t, err)
	require.Len(t, slips, 1)

	slip := slips[0]
	assert.True(t, slip.GrossSalary.Equal(decimal.NewFromInt(300000)))
	assert.True(t, slip.Deduction.Equal(decimal.NewFromInt(30000)))
	assert.True(t, slip.NetSalary.Equal(decimal.NewFromInt(270000)))
	assert.Equal(t, 2, slip.AbsentDays)
	assert.Equal(t, "pending", slip.Status)

	got, err := f.service.GetCycle(ctx, testEnterpriseID, cycle.ID)
	require.NoError(t, err)
	assert.Equal(t, string(paycycle.StateBulletinsGenerated), got.State)
}

func TestCycleService_GenerateBulletins_UsesEnterprisePenaltyOverride(t *testing.T) {
	t.Parallel()
	f := newCycleFixture(t)
	ctx := context.Background()

	_, err := f.settingsRepo.Upsert(ctx, settings.PayrollSettings{
		EnterpriseID:   testEnterpriseID,
		AbsencePenalty: decimal.NewFromInt(20000),
	})
	require.NoError(t, err)

	emp := f.seedFixedEmployee(t, "Awa Diop", 300000)
	f.seedAttendance(t, emp.ID, "2025-08-04", attendance.StatusAbsent)
	f.seedAttendance(t, emp.ID, "2025-08-05", attendance.StatusAbsent)

	cycle := f.createAugustCycle(t)
	slips, err := f.service.GenerateBulletins(ctx, testEnterpriseID, cycle.ID)
	require.NoError(t, err)
	require.Len(t, slips, 1)

	assert.True(t, slips[0].Deduction.Equal(decimal.NewFromInt(40000)))
	assert.True(t, slips[0].NetSalary.Equal(decimal.NewFromInt(260000)))
}

func TestCycleService_GenerateBulletins_NoActiveEmployees(t *testing.T) {
	t.Parallel()
	f := newCycleFixture(t)

	cycle := f.createAugustCycle(t)
	_, err := f.service.GenerateBulletins(context.Background(), testEnterpriseID, cycle.ID)
	assert.ErrorIs(t, err, paycycle.ErrNoActiveEmployees)
}

func TestCycleService_GenerateBulletins_MissingRateAbortsAll(t *testing.T) {
	t.Parallel()
	f := newCycleFixture(t)
	ctx := context.Background()

	f.seedFixedEmployee(t, "Awa Diop", 300000)
	// Hourly contract without an hourly rate.
	_, err := f.employeeRepo.Create(ctx, employee.Employee{
		EnterpriseID: testEnterpriseID,
		FullName:     "Moussa Ba",
		ContractType: employee.ContractTypeHourly,
		Active:       true,
	})
	require.NoError(t, err)

	cycle := f.createAugustCycle(t)
	_, err = f.service.GenerateBulletins(ctx, testEnterpriseID, cycle.ID)
	require.ErrorIs(t, err, employee.ErrMissingRate)

	// All-or-nothing: the valid employee's slip must not survive the abort.
	slips, err := f.service.ListSlips(ctx, testEnterpriseID, cycle.ID)
	require.NoError(t, err)
	assert.Empty(t, slips)

	got, err := f.service.GetCycle(ctx, testEnterpriseID, cycle.ID)
	require.NoError(t, err)
	assert.Equal(t, string(paycycle.StateDraft), got.State)
}

func TestCycleService_GenerateBulletins_RegenerateRecomputes(t *testing.T) {
	t.Parallel()
	f := newCycleFixture(t)
	ctx := context.Background()

	emp := f.seedFixedEmployee(t, "Awa Diop", 300000)
	cycle := f.createAugustCycle(t)

	first, err := f.service.GenerateBulletins(ctx, testEnterpriseID, cycle.ID)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.True(t, first[0].NetSalary.Equal(decimal.NewFromInt(300000)))

	// A late absence correction lands, regeneration picks it up.
	f.seedAttendance(t, emp.ID, "2025-08-11", attendance.StatusAbsent)

	second, err := f.service.GenerateBulletins(ctx, testEnterpriseID, cycle.ID)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID, "regeneration replaces the slip in place")
	assert.True(t, second[0].NetSalary.Equal(decimal.NewFromInt(285000)))
}

func TestCycleService_GenerateBulletins_AfterApproval(t *testing.T) {
	t.Parallel()
	f := newCycleFixture(t)
	ctx := context.Background()

	f.seedFixedEmployee(t, "Awa Diop", 300000)
	cycle := f.createAugustCycle(t)

	_, err := f.service.GenerateBulletins(ctx, testEnterpriseID, cycle.ID)
	require.NoError(t, err)
	_, err = f.service.Approve(ctx, testEnterpriseID, cycle.ID)
	require.NoError(t, err)

	_, err = f.service.GenerateBulletins(ctx, testEnterpriseID, cycle.ID)
	assert.ErrorIs(t, err, paycycle.ErrInvalidCycleState)
}

func TestCycleService_Approve_RequiresBulletins(t *testing.T) {
	t.Parallel()
	f := newCycleFixture(t)

	cycle := f.createAugustCycle(t)
	_, err := f.service.Approve(context.Background(), testEnterpriseID, cycle.ID)
	assert.ErrorIs(t, err, paycycle.ErrInvalidCycleState)
}

func TestCycleService_Close_FullLifecycle(t *testing.T) {
	t.Parallel()
	f := newCycleFixture(t)
	ctx := context.Background()

	f.seedFixedEmployee(t, "Awa Diop", 300000)
	cycle := f.createAugustCycle(t)

	_, err := f.service.GenerateBulletins(ctx, testEnterpriseID, cycle.ID)
	require.NoError(t, err)

	approved, err := f.service.Approve(ctx, testEnterpriseID, cycle.ID)
	require.NoError(t, err)
	assert.Equal(t, string(paycycle.StateApproved), approved.State)

	closed, err := f.service.Close(ctx, testEnterpriseID, cycle.ID)
	require.NoError(t, err)
	assert.Equal(t, string(paycycle.StateClosed), closed.State)

	// Closed is terminal.
	_, err = f.service.Close(ctx, testEnterpriseID, cycle.ID)
	assert.ErrorIs(t, err, paycycle.ErrInvalidCycleState)
}

func TestCycleService_Close_RequiresApproval(t *testing.T) {
	t.Parallel()
	f := newCycleFixture(t)
	ctx := context.Background()

	f.seedFixedEmployee(t, "Awa Diop", 300000)
	cycle := f.createAugustCycle(t)
	_, err := f.service.GenerateBulletins(ctx, testEnterpriseID, cycle.ID)
	require.NoError(t, err)

	_, err = f.service.Close(ctx, testEnterpriseID, cycle.ID)
	assert.ErrorIs(t, err, paycycle.ErrInvalidCycleState)
}

func TestCycleService_GetCycle_ForeignEnterpriseHidden(t *testing.T) {
	t.Parallel()
	f := newCycleFixture(t)

	cycle := f.createAugustCycle(t)
	_, err := f.service.GetCycle(context.Background(), "ent-other", cycle.ID)
	assert.ErrorIs(t, err, paycycle.ErrCycleNotFound)
}

func TestCycleService_GetSlip_ForeignEnterpriseHidden(t *testing.T) {
	t.Parallel()
	f := newCycleFixture(t)
	ctx := context.Background()

	f.seedFixedEmployee(t, "Awa Diop", 300000)
	cycle := f.createAugustCycle(t)
	slips, err := f.service.GenerateBulletins(ctx, testEnterpriseID, cycle.ID)
	require.NoError(t, err)

	_, err = f.service.GetSlip(ctx, "ent-other", slips[0].ID)
	assert.Error(t, err)
}

func TestCycleService_GenerateBulletins_SkipsInactiveEmployees(t *testing.T) {
	t.Parallel()
	f := newCycleFixture(t)
	ctx := context.Background()

	f.seedFixedEmployee(t, "Awa Diop", 300000)
	inactive := f.seedFixedEmployee(t, "Fatou Sall", 250000)
	require.NoError(t, f.employeeRepo.Deactivate(ctx, inactive.ID, testEnterpriseID))

	cycle := f.createAugustCycle(t)
	slips, err := f.service.GenerateBulletins(ctx, testEnterpriseID, cycle.ID)
	require.NoError(t, err)
	require.Len(t, slips, 1)
	assert.Equal(t, "Awa Diop", *slips[0].EmployeeName)
}

func TestCycleService_Summarize_TotalsSlips(t *testing.T) {
	t.Parallel()
	f := newCycleFixture(t)
	ctx := context.Background()

	emp := f.seedFixedEmployee(t, "Awa Diop", 300000)
	f.seedFixedEmployee(t, "Fatou Sall", 250000)
	f.seedAttendance(t, emp.ID, "2025-08-04", attendance.StatusAbsent)

	cycle := f.createAugustCycle(t)
	_, err := f.service.GenerateBulletins(ctx, testEnterpriseID, cycle.ID)
	require.NoError(t, err)

	summary, err := f.service.Summarize(ctx, testEnterpriseID, cycle.ID)
	require.NoError(t, err)
	assert.Equal(t, cycle.ID, summary.CycleID)
	assert.Equal(t, "2025-08", summary.Period)
	assert.Equal(t, string(paycycle.StateBulletinsGenerated), summary.State)
	assert.Equal(t, 2, summary.SlipCount)
	assert.True(t, summary.TotalGross.Equal(decimal.NewFromInt(550000)))
	assert.True(t, summary.TotalDeduction.Equal(decimal.NewFromInt(15000)))
	assert.True(t, summary.TotalNet.Equal(decimal.NewFromInt(535000)))
	assert.True(t, summary.TotalPaid.Equal(decimal.Zero))
	assert.True(t, summary.TotalOutstanding.Equal(decimal.NewFromInt(535000)))
	assert.Equal(t, map[string]int{"pending": 2}, summary.SlipsByStatus)
}

func TestCycleService_Summarize_ForeignEnterpriseHidden(t *testing.T) {
	t.Parallel()
	f := newCycleFixture(t)
	ctx := context.Background()

	f.seedFixedEmployee(t, "Awa Diop", 300000)
	cycle := f.createAugustCycle(t)

	_, err := f.service.Summarize(ctx, "ent-other", cycle.ID)
	assert.ErrorIs(t, err, paycycle.ErrCycleNotFound)
}
