package paycycle

import (
	"context"
	"fmt"
	"time"

	"github.com/opspay/payroll-backend-go/internal/domain/attendance"
	"github.com/opspay/payroll-backend-go/internal/domain/employee"
	"github.com/opspay/payroll-backend-go/internal/domain/paycycle"
	"github.com/opspay/payroll-backend-go/internal/domain/payslip"
	"github.com/opspay/payroll-backend-go/internal/domain/settings"
	"github.com/opspay/payroll-backend-go/internal/pkg/database"
	"github.com/opspay/payroll-backend-go/internal/pkg/locking"
	"github.com/opspay/payroll-backend-go/internal/service/salary"
	"github.com/shopspring/decimal"
)

// CycleService drives the payroll cycle lifecycle: create draft, generate
// bulletins, approve, close. All mutations of one cycle are serialized
// through a per-cycle lock so regeneration never races payment recording.
type CycleService struct {
	txm            database.TxManager
	cycleRepo      paycycle.PayCycleRepository
	slipRepo       payslip.PaySlipRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	settingsRepo   settings.SettingsRepository
	defaultPenalty decimal.Decimal
	locks          *locking.KeyedMutex
}

func NewCycleService(
	txm database.TxManager,
	cycleRepo paycycle.PayCycleRepository,
	slipRepo payslip.PaySlipRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	settingsRepo settings.SettingsRepository,
	defaultPenalty decimal.Decimal,
	locks *locking.KeyedMutex,
) *CycleService {
	return &CycleService{
		txm:            txm,
		cycleRepo:      cycleRepo,
		slipRepo:       slipRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		settingsRepo:   settingsRepo,
		defaultPenalty: defaultPenalty,
		locks:          locks,
	}
}

// absencePenaltyFor resolves the enterprise's penalty override, falling back
// to the configured default.
func (s *CycleService) absencePenaltyFor(ctx context.Context, enterpriseID string) (decimal.Decimal, error) {
	override, err := s.settingsRepo.Get(ctx, enterpriseID)
	if err != nil {
		if err == settings.ErrSettingsNotFound {
			return s.defaultPenalty, nil
		}
		return decimal.Zero, fmt.Errorf("failed to get payroll settings: %w", err)
	}
	return override.AbsencePenalty, nil
}

// CreateCycle opens a new payroll cycle in the draft state. At most one cycle
// may exist per (enterprise, period).
func (s *CycleService) CreateCycle(ctx context.Context, enterpriseID string, req paycycle.CreateCycleRequest) (paycycle.CycleResponse, error) {
	if err := req.Validate(); err != nil {
		return paycycle.CycleResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	cycle, err := s.cycleRepo.Create(ctx, paycycle.PayCycle{
		EnterpriseID: enterpriseID,
		Period:       req.Period,
		StartDate:    startDate,
		EndDate:      endDate,
		State:        paycycle.StateDraft,
	})
	if err != nil {
		if err == paycycle.ErrPeriodAlreadyExists {
			return paycycle.CycleResponse{}, err
		}
		return paycycle.CycleResponse{}, fmt.Errorf("failed to create pay cycle: %w", err)
	}

	return paycycle.ToCycleResponse(cycle), nil
}

// GenerateBulletins computes one pay slip per active employee of the cycle's
// enterprise. Re-invoking before approval recomputes every slip; slips that
// already carry payments block regeneration. The whole run is atomic: one
// failing employee aborts with no slip written.
func (s *CycleService) GenerateBulletins(ctx context.Context, enterpriseID, cycleID string) ([]payslip.SlipResponse, error) {
	s.locks.Lock(cycleID)
	defer s.locks.Unlock(cycleID)

	cycle, err := s.getScopedCycle(ctx, enterpriseID, cycleID)
	if err != nil {
		return nil, err
	}
	if !cycle.CanRegenerate() {
		return nil, paycycle.ErrInvalidCycleState
	}

	employees, err := s.employeeRepo.GetActiveByEnterpriseID(ctx, enterpriseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	if len(employees) == 0 {
		return nil, paycycle.ErrNoActiveEmployees
	}

	penalty, err := s.absencePenaltyFor(ctx, enterpriseID)
	if err != nil {
		return nil, err
	}
	calc := salary.NewCalculator(penalty)

	var slips []payslip.PaySlip
	err = s.txm.WithinTx(ctx, func(ctx context.Context) error {
		slips = slips[:0]

		existing, err := s.slipRepo.ListByCycleID(ctx, cycle.ID)
		if err != nil {
			return fmt.Errorf("failed to list existing pay slips: %w", err)
		}
		for _, slip := range existing {
			if slip.TotalPaid.IsPositive() {
				return payslip.ErrSlipAlreadyPaid
			}
		}

		for _, emp := range employees {
			records, err := s.attendanceRepo.ListByEmployeeBetween(ctx, emp.ID, cycle.StartDate, cycle.EndDate)
			if err != nil {
				return fmt.Errorf("failed to list attendance for employee %s: %w", emp.ID, err)
			}

			result, err := calc.Compute(emp, records, cycle.StartDate, cycle.EndDate)
			if err != nil {
				return fmt.Errorf("employee %s: %w", emp.ID, err)
			}

			slip, err := s.slipRepo.Upsert(ctx, payslip.PaySlip{
				CycleID:         cycle.ID,
				EmployeeID:      emp.ID,
				GrossSalary:     result.Gross,
				NetSalary:       result.Net,
				Deduction:       result.Deduction,
				DeductionDetail: result.DeductionDetail,
				WorkedDays:      result.WorkedDays,
				AbsentDays:      result.AbsentDays,
				WorkedHours:     result.WorkedHours,
				Status:          payslip.PaymentStatusPending,
				EmployeeName:    &emp.FullName,
			})
			if err != nil {
				return err
			}
			slips = append(slips, slip)
		}

		if cycle.State == paycycle.StateDraft {
			if err := s.cycleRepo.UpdateState(ctx, cycle.ID, paycycle.StateBulletinsGenerated); err != nil {
				return fmt.Errorf("failed to update cycle state: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return payslip.ToSlipResponses(slips), nil
}

// Approve moves the cycle from bulletins_generated to approved, freezing the
// computed amounts. A cycle with no slips or with a negative net slip cannot
// be approved.
func (s *CycleService) Approve(ctx context.Context, enterpriseID, cycleID string) (paycycle.CycleResponse, error) {
	return s.transition(ctx, enterpriseID, cycleID, paycycle.StateApproved, func(ctx context.Context, cycle paycycle.PayCycle) error {
		slips, err := s.slipRepo.ListByCycleID(ctx, cycle.ID)
		if err != nil {
			return fmt.Errorf("failed to list pay slips: %w", err)
		}
		if len(slips) == 0 {
			return paycycle.ErrInvalidCycleState
		}
		for _, slip := range slips {
			if slip.NetSalary.IsNegative() {
				return paycycle.ErrNegativeNetSalary
			}
		}
		return nil
	})
}

// Close moves an approved cycle into its terminal state. Slips with
// outstanding balances do not block closing; the balance stays visible as
// unpaid.
func (s *CycleService) Close(ctx context.Context, enterpriseID, cycleID string) (paycycle.CycleResponse, error) {
	return s.transition(ctx, enterpriseID, cycleID, paycycle.StateClosed, nil)
}

func (s *CycleService) transition(ctx context.Context, enterpriseID, cycleID string, to paycycle.State, check func(ctx context.Context, cycle paycycle.PayCycle) error) (paycycle.CycleResponse, error) {
	s.locks.Lock(cycleID)
	defer s.locks.Unlock(cycleID)

	cycle, err := s.getScopedCycle(ctx, enterpriseID, cycleID)
	if err != nil {
		return paycycle.CycleResponse{}, err
	}
	if !paycycle.CanTransition(cycle.State, to) {
		return paycycle.CycleResponse{}, paycycle.ErrInvalidCycleState
	}
	if check != nil {
		if err := check(ctx, cycle); err != nil {
			return paycycle.CycleResponse{}, err
		}
	}

	if err := s.cycleRepo.UpdateState(ctx, cycle.ID, to); err != nil {
		return paycycle.CycleResponse{}, fmt.Errorf("failed to update cycle state: %w", err)
	}
	cycle.State = to

	return paycycle.ToCycleResponse(cycle), nil
}

// GetCycle fetches one cycle scoped to the caller's enterprise.
func (s *CycleService) GetCycle(ctx context.Context, enterpriseID, cycleID string) (paycycle.CycleResponse, error) {
	cycle, err := s.getScopedCycle(ctx, enterpriseID, cycleID)
	if err != nil {
		return paycycle.CycleResponse{}, err
	}
	return paycycle.ToCycleResponse(cycle), nil
}

// ListCycles returns every cycle of the enterprise, newest period first.
func (s *CycleService) ListCycles(ctx context.Context, enterpriseID string) ([]paycycle.CycleResponse, error) {
	cycles, err := s.cycleRepo.ListByEnterpriseID(ctx, enterpriseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay cycles: %w", err)
	}

	responses := make([]paycycle.CycleResponse, 0, len(cycles))
	for _, cycle := range cycles {
		responses = append(responses, paycycle.ToCycleResponse(cycle))
	}
	return responses, nil
}

// GetSlip fetches one pay slip, verifying through its cycle that it belongs
// to the caller's enterprise. A cross-enterprise slip reads as not found.
func (s *CycleService) GetSlip(ctx context.Context, enterpriseID, slipID string) (payslip.SlipResponse, error) {
	slip, err := s.slipRepo.GetByID(ctx, slipID)
	if err != nil {
		return payslip.SlipResponse{}, err
	}

	cycle, err := s.cycleRepo.GetByID(ctx, slip.CycleID)
	if err != nil {
		return payslip.SlipResponse{}, fmt.Errorf("failed to get cycle for slip: %w", err)
	}
	if cycle.EnterpriseID != enterpriseID {
		return payslip.SlipResponse{}, payslip.ErrSlipNotFound
	}

	return payslip.ToSlipResponse(slip), nil
}

// ListSlips returns every slip of a cycle.
func (s *CycleService) ListSlips(ctx context.Context, enterpriseID, cycleID string) ([]payslip.SlipResponse, error) {
	if _, err := s.getScopedCycle(ctx, enterpriseID, cycleID); err != nil {
		return nil, err
	}

	slips, err := s.slipRepo.ListByCycleID(ctx, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay slips: %w", err)
	}
	return payslip.ToSlipResponses(slips), nil
}

// Summarize totals the cycle's slips: gross, deductions, net, what the
// ledger has covered so far, and how many slips sit in each payment status.
func (s *CycleService) Summarize(ctx context.Context, enterpriseID, cycleID string) (paycycle.CycleSummaryResponse, error) {
	cycle, err := s.getScopedCycle(ctx, enterpriseID, cycleID)
	if err != nil {
		return paycycle.CycleSummaryResponse{}, err
	}

	slips, err := s.slipRepo.ListByCycleID(ctx, cycleID)
	if err != nil {
		return paycycle.CycleSummaryResponse{}, fmt.Errorf("failed to list pay slips: %w", err)
	}

	summary := paycycle.CycleSummaryResponse{
		CycleID:          cycle.ID,
		Period:           cycle.Period,
		State:            string(cycle.State),
		SlipCount:        len(slips),
		TotalGross:       decimal.Zero,
		TotalDeduction:   decimal.Zero,
		TotalNet:         decimal.Zero,
		TotalPaid:        decimal.Zero,
		TotalOutstanding: decimal.Zero,
		SlipsByStatus:    make(map[string]int),
	}
	for _, slip := range slips {
		summary.TotalGross = summary.TotalGross.Add(slip.GrossSalary)
		summary.TotalDeduction = summary.TotalDeduction.Add(slip.Deduction)
		summary.TotalNet = summary.TotalNet.Add(slip.NetSalary)
		summary.TotalPaid = summary.TotalPaid.Add(slip.TotalPaid)
		summary.SlipsByStatus[string(slip.Status)]++
	}
	summary.TotalOutstanding = summary.TotalNet.Sub(summary.TotalPaid)
	return summary, nil
}

// getScopedCycle loads the cycle and hides it from foreign enterprises.
func (s *CycleService) getScopedCycle(ctx context.Context, enterpriseID, cycleID string) (paycycle.PayCycle, error) {
	cycle, err := s.cycleRepo.GetByID(ctx, cycleID)
	if err != nil {
		return paycycle.PayCycle{}, err
	}
	if cycle.EnterpriseID != enterpriseID {
		return paycycle.PayCycle{}, paycycle.ErrCycleNotFound
	}
	return cycle, nil
}
