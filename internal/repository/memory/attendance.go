package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/opspay/payroll-backend-go/internal/domain/attendance"
)

type attendanceRepository struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &attendanceRepository{store: store}
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (r *attendanceRepository) Create(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := dayKey(record.EmployeeID, record.Date)
	if _, exists := r.store.attendanceByDay[key]; exists {
		return attendance.AttendanceRecord{}, attendance.ErrRecordExists
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.CreatedAt = time.Now()
	r.store.attendance[record.ID] = record
	r.store.attendanceByDay[key] = record.ID
	return record, nil
}

func (r *attendanceRepository) ListByEmployeeBetween(ctx context.Context, employeeID string, startDate, endDate time.Time) ([]attendance.AttendanceRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []attendance.AttendanceRecord
	for _, record := range r.store.attendance {
		if record.EmployeeID != employeeID {
			continue
		}
		if record.Date.Before(startDate) || record.Date.After(endDate) {
			continue
		}
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *attendanceRepository) ListEmployeeIDsWithRecordOn(ctx context.Context, enterpriseID string, date time.Time) (map[string]bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	day := date.Format("2006-01-02")
	out := make(map[string]bool)
	for _, record := range r.store.attendance {
		if record.EnterpriseID == enterpriseID && record.Date.Format("2006-01-02") == day {
			out[record.EmployeeID] = true
		}
	}
	return out, nil
}

func (r *attendanceRepository) BulkCreateAbsences(ctx context.Context, records []attendance.AttendanceRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, record := range records {
		key := dayKey(record.EmployeeID, record.Date)
		if _, exists := r.store.attendanceByDay[key]; exists {
			// Sweep idempotence: existing records win.
			continue
		}
		if record.ID == "" {
			record.ID = uuid.NewString()
		}
		record.CreatedAt = time.Now()
		r.store.attendance[record.ID] = record
		r.store.attendanceByDay[key] = record.ID
	}
	return nil
}
