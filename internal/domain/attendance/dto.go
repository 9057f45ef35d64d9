package attendance

import (
	"github.com/opspay/payroll-backend-go/internal/pkg/validator"
)

type RecordAttendanceRequest struct {
	EmployeeID    string  `json:"employee_id"`
	Date          string  `json:"date"`
	Status        string  `json:"status"`
	ClockIn       *string `json:"clock_in,omitempty"`
	ClockOut      *string `json:"clock_out,omitempty"`
	WorkedMinutes *int    `json:"worked_minutes,omitempty"`
}

func (r *RecordAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	// Status may be omitted when clock_in is present: it is then derived
	// from the clock-in time against the workday start.
	if validator.IsEmpty(r.Status) {
		if r.ClockIn == nil {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "is required without clock_in"})
		}
	} else if !Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "unknown attendance status"})
	}
	if r.WorkedMinutes != nil && *r.WorkedMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "worked_minutes", Message: "must be non-negative"})
	}
	if r.ClockIn != nil {
		if _, ok := validator.IsValidClockTime(*r.ClockIn); !ok {
			errs = append(errs, validator.ValidationError{Field: "clock_in", Message: "must be HH:MM"})
		}
	}
	if r.ClockOut != nil {
		if _, ok := validator.IsValidClockTime(*r.ClockOut); !ok {
			errs = append(errs, validator.ValidationError{Field: "clock_out", Message: "must be HH:MM"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SweepRequest struct {
	Date string `json:"date"`
}

func (r *SweepRequest) Validate() error {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	Date          string  `json:"date"`
	Status        string  `json:"status"`
	ClockIn       *string `json:"clock_in,omitempty"`
	ClockOut      *string `json:"clock_out,omitempty"`
	WorkedMinutes *int    `json:"worked_minutes,omitempty"`
	AutoMarked    bool    `json:"auto_marked"`
}
