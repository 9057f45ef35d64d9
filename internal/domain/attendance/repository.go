package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for the attendance store.
type AttendanceRepository interface {
	Create(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)
	ListByEmployeeBetween(ctx context.Context, employeeID string, startDate, endDate time.Time) ([]AttendanceRecord, error)
	// ListEmployeeIDsWithRecordOn returns the set of employees of the
	// enterprise that already have a record on the given date.
	ListEmployeeIDsWithRecordOn(ctx context.Context, enterpriseID string, date time.Time) (map[string]bool, error)
	BulkCreateAbsences(ctx context.Context, records []AttendanceRecord) error
}
