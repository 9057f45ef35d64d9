package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/opspay/payroll-backend-go/internal/domain/attendance"
	"github.com/opspay/payroll-backend-go/internal/domain/employee"
)

// AttendanceService records employee-day attendance and runs the scheduled
// absence sweep.
type AttendanceService struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	// workdayStart ("HH:MM") splits derived statuses into present vs late.
	workdayStart string
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, employeeRepo employee.EmployeeRepository, workdayStart string) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		workdayStart:   workdayStart,
	}
}

// RecordAttendance writes one employee-day record. At most one record exists
// per employee per date; a second write for the same day is rejected.
func (s *AttendanceService) RecordAttendance(ctx context.Context, enterpriseID string, req attendance.RecordAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, enterpriseID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	record := attendance.AttendanceRecord{
		EmployeeID:    emp.ID,
		EnterpriseID:  enterpriseID,
		Date:          date,
		Status:        attendance.Status(req.Status),
		WorkedMinutes: req.WorkedMinutes,
	}
	if req.ClockIn != nil {
		t := clockOn(date, *req.ClockIn)
		record.ClockIn = &t
	}
	if req.ClockOut != nil {
		t := clockOn(date, *req.ClockOut)
		record.ClockOut = &t
	}
	if req.Status == "" {
		record.Status = s.deriveStatus(date, *record.ClockIn)
	}

	created, err := s.attendanceRepo.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(created), nil
}

// ListAttendance returns an employee's records over [startDate, endDate].
func (s *AttendanceService) ListAttendance(ctx context.Context, enterpriseID, employeeID string, startDate, endDate time.Time) ([]attendance.AttendanceResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID, enterpriseID); err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByEmployeeBetween(ctx, employeeID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toResponse(record))
	}
	return responses, nil
}

// MarkAbsentees writes an auto-marked absent record for every active employee
// of the enterprise without a record on the given date. Re-running the sweep
// for the same date adds nothing. Returns the number of records created.
func (s *AttendanceService) MarkAbsentees(ctx context.Context, enterpriseID string, date time.Time) (int, error) {
	employees, err := s.employeeRepo.GetActiveByEnterpriseID(ctx, enterpriseID)
	if err != nil {
		return 0, fmt.Errorf("failed to list active employees: %w", err)
	}

	recorded, err := s.attendanceRepo.ListEmployeeIDsWithRecordOn(ctx, enterpriseID, date)
	if err != nil {
		return 0, fmt.Errorf("failed to list recorded employees: %w", err)
	}

	var absences []attendance.AttendanceRecord
	for _, emp := range employees {
		if recorded[emp.ID] {
			continue
		}
		absences = append(absences, attendance.AttendanceRecord{
			EmployeeID:   emp.ID,
			EnterpriseID: enterpriseID,
			Date:         date,
			Status:       attendance.StatusAbsent,
			AutoMarked:   true,
		})
	}
	if len(absences) == 0 {
		return 0, nil
	}

	if err := s.attendanceRepo.BulkCreateAbsences(ctx, absences); err != nil {
		return 0, fmt.Errorf("failed to create absence records: %w", err)
	}
	return len(absences), nil
}

// SweepAll runs the absence sweep for the given date across every enterprise
// with employees. Used by the scheduled job after the daily cutoff.
func (s *AttendanceService) SweepAll(ctx context.Context, date time.Time) (int, error) {
	enterpriseIDs, err := s.employeeRepo.ListEnterpriseIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list enterprises: %w", err)
	}

	total := 0
	for _, enterpriseID := range enterpriseIDs {
		n, err := s.MarkAbsentees(ctx, enterpriseID, date)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// deriveStatus classifies a clock-in as present or late, measured against
// the configured workday start.
func (s *AttendanceService) deriveStatus(date, clockIn time.Time) attendance.Status {
	if clockIn.After(clockOn(date, s.workdayStart)) {
		return attendance.StatusLate
	}
	return attendance.StatusPresent
}

// clockOn anchors an HH:MM wall-clock string on the record's date.
func clockOn(date time.Time, hhmm string) time.Time {
	t, _ := time.Parse("15:04", hhmm)
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

func toResponse(record attendance.AttendanceRecord) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:            record.ID,
		EmployeeID:    record.EmployeeID,
		Date:          record.Date.Format("2006-01-02"),
		Status:        string(record.Status),
		WorkedMinutes: record.WorkedMinutes,
		AutoMarked:    record.AutoMarked,
	}
	if record.ClockIn != nil {
		s := record.ClockIn.Format("15:04")
		resp.ClockIn = &s
	}
	if record.ClockOut != nil {
		s := record.ClockOut.Format("15:04")
		resp.ClockOut = &s
	}
	return resp
}
