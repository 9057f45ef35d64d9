// Package memory holds in-memory implementations of the repository
// interfaces. They back the service tests and let the engine be embedded
// without PostgreSQL; the postgresql package is the production counterpart.
package memory

import (
	"context"
	"sync"

	"github.com/opspay/payroll-backend-go/internal/domain/attendance"
	"github.com/opspay/payroll-backend-go/internal/domain/employee"
	"github.com/opspay/payroll-backend-go/internal/domain/paycycle"
	"github.com/opspay/payroll-backend-go/internal/domain/payment"
	"github.com/opspay/payroll-backend-go/internal/domain/payslip"
	"github.com/opspay/payroll-backend-go/internal/domain/settings"
)

// Store is the shared backing state for every in-memory repository.
type Store struct {
	mu   sync.RWMutex // guards the maps below
	txMu sync.Mutex   // serializes WithinTx units of work

	employees       map[string]employee.Employee
	attendance      map[string]attendance.AttendanceRecord
	attendanceByDay map[string]string // employeeID|YYYY-MM-DD -> recordID
	cycles          map[string]paycycle.PayCycle
	slips           map[string]payslip.PaySlip
	slipByOwner     map[string]string // cycleID|employeeID -> slipID
	payments        map[string]payment.Payment
	receiptSeq      map[string]int // YYYYMMDD -> last issued sequence
	settings        map[string]settings.PayrollSettings
}

func NewStore() *Store {
	return &Store{
		employees:       make(map[string]employee.Employee),
		attendance:      make(map[string]attendance.AttendanceRecord),
		attendanceByDay: make(map[string]string),
		cycles:          make(map[string]paycycle.PayCycle),
		slips:           make(map[string]payslip.PaySlip),
		slipByOwner:     make(map[string]string),
		payments:        make(map[string]payment.Payment),
		receiptSeq:      make(map[string]int),
		settings:        make(map[string]settings.PayrollSettings),
	}
}

// WithinTx serializes the unit of work against all others and rolls every map
// back when fn fails, mirroring the all-or-nothing contract of the database
// transaction it stands in for.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snapshot := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

type storeSnapshot struct {
	employees       map[string]employee.Employee
	attendance      map[string]attendance.AttendanceRecord
	attendanceByDay map[string]string
	cycles          map[string]paycycle.PayCycle
	slips           map[string]payslip.PaySlip
	slipByOwner     map[string]string
	payments        map[string]payment.Payment
	receiptSeq      map[string]int
	settings        map[string]settings.PayrollSettings
}

func (s *Store) snapshot() storeSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return storeSnapshot{
		employees:       copyMap(s.employees),
		attendance:      copyMap(s.attendance),
		attendanceByDay: copyMap(s.attendanceByDay),
		cycles:          copyMap(s.cycles),
		slips:           copyMap(s.slips),
		slipByOwner:     copyMap(s.slipByOwner),
		payments:        copyMap(s.payments),
		receiptSeq:      copyMap(s.receiptSeq),
		settings:        copyMap(s.settings),
	}
}

func (s *Store) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.employees = snap.employees
	s.attendance = snap.attendance
	s.attendanceByDay = snap.attendanceByDay
	s.cycles = snap.cycles
	s.slips = snap.slips
	s.slipByOwner = snap.slipByOwner
	s.payments = snap.payments
	s.receiptSeq = snap.receiptSeq
	s.settings = snap.settings
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
