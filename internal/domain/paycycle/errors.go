package paycycle

import "errors"

var (
	ErrCycleNotFound       = errors.New("pay cycle not found")
	ErrInvalidCycleState   = errors.New("illegal pay cycle state transition")
	ErrInvalidPeriod       = errors.New("cycle start date must precede end date")
	ErrNoActiveEmployees   = errors.New("enterprise has no active employees")
	ErrNegativeNetSalary   = errors.New("cycle has a pay slip with negative net salary")
	ErrCycleClosed         = errors.New("pay cycle is closed and immutable")
	ErrPeriodAlreadyExists = errors.New("a cycle already exists for this enterprise and period")
)
