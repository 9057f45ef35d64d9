package attendance

import "errors"

var (
	ErrRecordNotFound = errors.New("attendance record not found")
	ErrRecordExists   = errors.New("attendance record already exists for this employee and date")
	ErrInvalidStatus  = errors.New("invalid attendance status")
)
