package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/opspay/payroll-backend-go/internal/domain/attendance"
	"github.com/opspay/payroll-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (employee_id, enterprise_id, date, status, clock_in, clock_out, worked_minutes, auto_marked)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.EnterpriseID, record.Date, record.Status,
		record.ClockIn, record.ClockOut, record.WorkedMinutes, record.AutoMarked,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.AttendanceRecord{}, attendance.ErrRecordExists
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// ListByEmployeeBetween implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployeeBetween(ctx context.Context, employeeID string, startDate, endDate time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, enterprise_id, date, status, clock_in, clock_out, worked_minutes, auto_marked, created_at
		FROM attendance_records
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		var record attendance.AttendanceRecord
		if err := rows.Scan(
			&record.ID, &record.EmployeeID, &record.EnterpriseID, &record.Date, &record.Status,
			&record.ClockIn, &record.ClockOut, &record.WorkedMinutes, &record.AutoMarked, &record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// ListEmployeeIDsWithRecordOn implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListEmployeeIDsWithRecordOn(ctx context.Context, enterpriseID string, date time.Time) (map[string]bool, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT employee_id FROM attendance_records
		WHERE enterprise_id = $1 AND date = $2
	`, enterpriseID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list recorded employees: %w", err)
	}
	defer rows.Close()

	recorded := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		recorded[id] = true
	}

	return recorded, rows.Err()
}

// BulkCreateAbsences implements attendance.AttendanceRepository. Days that
// already carry a record are left alone, which keeps the sweep idempotent.
func (r *attendanceRepository) BulkCreateAbsences(ctx context.Context, records []attendance.AttendanceRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (employee_id, enterprise_id, date, status, auto_marked)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, date) DO NOTHING
	`

	for _, record := range records {
		if _, err := q.Exec(ctx, query,
			record.EmployeeID, record.EnterpriseID, record.Date, record.Status, record.AutoMarked,
		); err != nil {
			return fmt.Errorf("failed to create absence record: %w", err)
		}
	}

	return nil
}
