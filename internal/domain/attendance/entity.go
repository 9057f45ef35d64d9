package attendance

import "time"

// Status enum, derived when the record is written.
type Status string

const (
	StatusPresent  Status = "present"
	StatusLate     Status = "late"
	StatusAbsent   Status = "absent"
	StatusOvertime Status = "overtime"
	StatusLeave    Status = "leave"
	StatusSick     Status = "sick"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent, StatusOvertime, StatusLeave, StatusSick:
		return true
	}
	return false
}

// WorkedDay reports whether the status evidences presence at work. Late and
// overtime days count as worked days for day-rated contracts.
func (s Status) WorkedDay() bool {
	return s == StatusPresent || s == StatusLate || s == StatusOvertime
}

// AttendanceRecord is one employee-day. Immutable once the day has passed,
// except for the scheduled absence sweep which may append absent records.
type AttendanceRecord struct {
	ID            string
	EmployeeID    string
	EnterpriseID  string
	Date          time.Time
	Status        Status
	ClockIn       *time.Time
	ClockOut      *time.Time
	WorkedMinutes *int
	AutoMarked    bool
	CreatedAt     time.Time
}
