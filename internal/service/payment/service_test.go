package payment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/opspay/payroll-backend-go/internal/domain/attendance"
	"github.com/opspay/payroll-backend-go/internal/domain/employee"
	"github.com/opspay/payroll-backend-go/internal/domain/paycycle"
	"github.com/opspay/payroll-backend-go/internal/domain/payment"
	"github.com/opspay/payroll-backend-go/internal/domain/payslip"
	"github.com/opspay/payroll-backend-go/internal/pkg/locking"
	"github.com/opspay/payroll-backend-go/internal/repository/memory"
	paycycleservice "github.com/opspay/payroll-backend-go/internal/service/paycycle"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEnterpriseID = "ent-acme"

var testDay = time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC)

type ledgerFixture struct {
	service      *LedgerService
	cycleService *paycycleservice.CycleService
	slipRepo     payslip.PaySlipRepository
	paymentRepo  payment.PaymentRepository
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	store := memory.NewStore()
	employeeRepo := memory.NewEmployeeRepository(store)
	attendanceRepo := memory.NewAttendanceRepository(store)
	cycleRepo := memory.NewPayCycleRepository(store)
	slipRepo := memory.NewPaySlipRepository(store)
	paymentRepo := memory.NewPaymentRepository(store)

	locks := locking.NewKeyedMutex()
	settingsRepo := memory.NewSettingsRepository(store)
	cycleService := paycycleservice.NewCycleService(store, cycleRepo, slipRepo, employeeRepo, attendanceRepo, settingsRepo, decimal.NewFromInt(15000), locks)

	service := NewLedgerService(store, paymentRepo, slipRepo, cycleRepo, locks)
	service.now = func() time.Time { return testDay }

	f := &ledgerFixture{
		service:      service,
		cycleService: cycleService,
		slipRepo:     slipRepo,
		paymentRepo:  paymentRepo,
	}

	base := decimal.NewFromInt(300000)
	emp, err := employeeRepo.Create(context.Background(), employee.Employee{
		EnterpriseID: testEnterpriseID,
		FullName:     "Awa Diop",
		ContractType: employee.ContractTypeFixed,
		BaseSalary:   &base,
		Active:       true,
	})
	require.NoError(t, err)

	for _, date := range []string{"2025-08-04", "2025-08-05"} {
		day, err := time.Parse("2006-01-02", date)
		require.NoError(t, err)
		_, err = attendanceRepo.Create(context.Background(), attendance.AttendanceRecord{
			EmployeeID:   emp.ID,
			EnterpriseID: testEnterpriseID,
			Date:         day,
			Status:       attendance.StatusAbsent,
		})
		require.NoError(t, err)
	}

	return f
}

// approvedSlip sets up an approved cycle holding one slip with net 270000
// (base 300000 minus two absence penalties) and returns the slip's ID.
func (f *ledgerFixture) approvedSlip(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	cycle, err := f.cycleService.CreateCycle(ctx, testEnterpriseID, paycycle.CreateCycleRequest{
		Period:    "2025-08",
		StartDate: "2025-08-01",
		EndDate:   "2025-08-31",
	})
	require.NoError(t, err)

	slips, err := f.cycleService.GenerateBulletins(ctx, testEnterpriseID, cycle.ID)
	require.NoError(t, err)
	require.Len(t, slips, 1)
	require.True(t, slips[0].NetSalary.Equal(decimal.NewFromInt(270000)))

	_, err = f.cycleService.Approve(ctx, testEnterpriseID, cycle.ID)
	require.NoError(t, err)

	return slips[0].ID
}

func payReq(amount int64) payment.RecordPaymentRequest {
	return payment.RecordPaymentRequest{
		Amount:      decimal.NewFromInt(amount),
		Method:      string(payment.MethodCash),
		ProcessedBy: "user-accountant",
	}
}

func TestLedgerService_RecordPayment_PartialThenPaid(t *testing.T) {
	t.Parallel()
	f := newLedgerFixture(t)
	ctx := context.Background()
	slipID := f.approvedSlip(t)

	first, err := f.service.RecordPayment(ctx, testEnterpriseID, slipID, payReq(100000))
	require.NoError(t, err)
	assert.Equal(t, "REC202508050001", first.ReceiptNumber)

	slip, err := f.slipRepo.GetByID(ctx, slipID)
	require.NoError(t, err)
	assert.Equal(t, payslip.PaymentStatusPartial, slip.Status)
	assert.True(t, slip.TotalPaid.Equal(decimal.NewFromInt(100000)))

	second, err := f.service.RecordPayment(ctx, testEnterpriseID, slipID, payReq(170000))
	require.NoError(t, err)
	assert.Equal(t, "REC202508050002", second.ReceiptNumber)

	slip, err = f.slipRepo.GetByID(ctx, slipID)
	require.NoError(t, err)
	assert.Equal(t, payslip.PaymentStatusPaid, slip.Status)
	assert.True(t, slip.TotalPaid.Equal(slip.NetSalary))
	assert.True(t, slip.Outstanding().IsZero())
}

func TestLedgerService_RecordPayment_Overpayment(t *testing.T) {
	t.Parallel()
	f := newLedgerFixture(t)
	ctx := context.Background()
	slipID := f.approvedSlip(t)

	_, err := f.service.RecordPayment(ctx, testEnterpriseID, slipID, payReq(270001))
	require.ErrorIs(t, err, payment.ErrOverpayment)

	// The rejected payment must leave no trace.
	payments, err := f.service.ListPayments(ctx, testEnterpriseID, slipID)
	require.NoError(t, err)
	assert.Empty(t, payments)

	slip, err := f.slipRepo.GetByID(ctx, slipID)
	require.NoError(t, err)
	assert.Equal(t, payslip.PaymentStatusPending, slip.Status)
	assert.True(t, slip.TotalPaid.IsZero())
}

func TestLedgerService_RecordPayment_ExactRemainder(t *testing.T) {
	t.Parallel()
	f := newLedgerFixture(t)
	ctx := context.Background()
	slipID := f.approvedSlip(t)

	_, err := f.service.RecordPayment(ctx, testEnterpriseID, slipID, payReq(200000))
	require.NoError(t, err)
	_, err = f.service.RecordPayment(ctx, testEnterpriseID, slipID, payReq(70000))
	require.NoError(t, err)

	// Fully paid slips accept nothing further.
	_, err = f.service.RecordPayment(ctx, testEnterpriseID, slipID, payReq(1))
	assert.ErrorIs(t, err, payment.ErrOverpayment)
}

func TestLedgerService_RecordPayment_RequiresApprovedCycle(t *testing.T) {
	t.Parallel()
	f := newLedgerFixture(t)
	ctx := context.Background()

	cycle, err := f.cycleService.CreateCycle(ctx, testEnterpriseID, paycycle.CreateCycleRequest{
		Period:    "2025-08",
		StartDate: "2025-08-01",
		EndDate:   "2025-08-31",
	})
	require.NoError(t, err)
	slips, err := f.cycleService.GenerateBulletins(ctx, testEnterpriseID, cycle.ID)
	require.NoError(t, err)

	_, err = f.service.RecordPayment(ctx, testEnterpriseID, slips[0].ID, payReq(1000))
	assert.ErrorIs(t, err, payment.ErrCycleNotApproved)
}

func TestLedgerService_RecordPayment_ClosedCycleRejected(t *testing.T) {
	t.Parallel()
	f := newLedgerFixture(t)
	ctx := context.Background()
	slipID := f.approvedSlip(t)

	slip, err := f.slipRepo.GetByID(ctx, slipID)
	require.NoError(t, err)
	_, err = f.cycleService.Close(ctx, testEnterpriseID, slip.CycleID)
	require.NoError(t, err)

	_, err = f.service.RecordPayment(ctx, testEnterpriseID, slipID, payReq(1000))
	assert.ErrorIs(t, err, payment.ErrCycleNotApproved)
}

func TestLedgerService_RecordPayment_Validation(t *testing.T) {
	t.Parallel()
	f := newLedgerFixture(t)
	ctx := context.Background()
	slipID := f.approvedSlip(t)

	_, err := f.service.RecordPayment(ctx, testEnterpriseID, slipID, payReq(0))
	assert.Error(t, err)

	_, err = f.service.RecordPayment(ctx, testEnterpriseID, slipID, payment.RecordPaymentRequest{
		Amount: decimal.NewFromInt(1000),
		Method: "barter",
	})
	assert.Error(t, err)
}

func TestLedgerService_RecordPayment_ForeignEnterpriseHidden(t *testing.T) {
	t.Parallel()
	f := newLedgerFixture(t)
	slipID := f.approvedSlip(t)

	_, err := f.service.RecordPayment(context.Background(), "ent-other", slipID, payReq(1000))
	assert.ErrorIs(t, err, payslip.ErrSlipNotFound)
}

func TestLedgerService_RecordPayment_ConcurrentNeverOverpays(t *testing.T) {
	t.Parallel()
	f := newLedgerFixture(t)
	ctx := context.Background()
	slipID := f.approvedSlip(t)

	// Net is 270000; ten concurrent 50000 payments can admit at most five.
	const workers = 10
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.RecordPayment(ctx, testEnterpriseID, slipID, payReq(50000))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, payment.ErrOverpayment)
		}
	}
	assert.Equal(t, 5, succeeded)

	slip, err := f.slipRepo.GetByID(ctx, slipID)
	require.NoError(t, err)
	assert.True(t, slip.TotalPaid.Equal(decimal.NewFromInt(250000)))
	assert.True(t, slip.TotalPaid.LessThanOrEqual(slip.NetSalary))

	// Every accepted payment carries a distinct receipt number.
	payments, err := f.service.ListPayments(ctx, testEnterpriseID, slipID)
	require.NoError(t, err)
	require.Len(t, payments, 5)
	seen := make(map[string]bool)
	for _, p := range payments {
		assert.False(t, seen[p.ReceiptNumber], "duplicate receipt %s", p.ReceiptNumber)
		seen[p.ReceiptNumber] = true
	}
}

func TestLedgerService_VoidPayment_RestoresBalance(t *testing.T) {
	t.Parallel()
	f := newLedgerFixture(t)
	ctx := context.Background()
	slipID := f.approvedSlip(t)

	first, err := f.service.RecordPayment(ctx, testEnterpriseID, slipID, payReq(100000))
	require.NoError(t, err)
	_, err = f.service.RecordPayment(ctx, testEnterpriseID, slipID, payReq(170000))
	require.NoError(t, err)

	voided, err := f.service.VoidPayment(ctx, testEnterpriseID, first.ID)
	require.NoError(t, err)
	assert.NotNil(t, voided.VoidedAt)
	assert.Equal(t, first.ReceiptNumber, voided.ReceiptNumber, "receipt survives the void")

	slip, err := f.slipRepo.GetByID(ctx, slipID)
	require.NoError(t, err)
	assert.True(t, slip.TotalPaid.Equal(decimal.NewFromInt(170000)))
	assert.Equal(t, payslip.PaymentStatusPartial, slip.Status)

	// The ledger keeps the voided row visible.
	payments, err := f.service.ListPayments(ctx, testEnterpriseID, slipID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)

	_, err = f.service.VoidPayment(ctx, testEnterpriseID, first.ID)
	assert.ErrorIs(t, err, payment.ErrAlreadyVoided)
}

func TestLedgerService_VoidPayment_ClosedCycleRejected(t *testing.T) {
	t.Parallel()
	f := newLedgerFixture(t)
	ctx := context.Background()
	slipID := f.approvedSlip(t)

	p, err := f.service.RecordPayment(ctx, testEnterpriseID, slipID, payReq(270000))
	require.NoError(t, err)

	slip, err := f.slipRepo.GetByID(ctx, slipID)
	require.NoError(t, err)
	_, err = f.cycleService.Close(ctx, testEnterpriseID, slip.CycleID)
	require.NoError(t, err)

	_, err = f.service.VoidPayment(ctx, testEnterpriseID, p.ID)
	assert.ErrorIs(t, err, paycycle.ErrCycleClosed)
}

func TestLedgerService_VoidPayment_ForeignEnterpriseHidden(t *testing.T) {
	t.Parallel()
	f := newLedgerFixture(t)
	ctx := context.Background()
	slipID := f.approvedSlip(t)

	p, err := f.service.RecordPayment(ctx, testEnterpriseID, slipID, payReq(1000))
	require.NoError(t, err)

	_, err = f.service.VoidPayment(ctx, "ent-other", p.ID)
	assert.ErrorIs(t, err, payment.ErrPaymentNotFound)
}
