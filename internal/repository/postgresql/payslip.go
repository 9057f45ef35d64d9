package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/opspay/payroll-backend-go/internal/domain/payslip"
	"github.com/opspay/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type paySlipRepository struct {
	db *database.DB
}

func NewPaySlipRepository(db *database.DB) payslip.PaySlipRepository {
	return &paySlipRepository{db: db}
}

// Upsert implements payslip.PaySlipRepository. Keyed on (cycle_id,
// employee_id); regeneration replaces the computed amounts in place and keeps
// the slip's identity.
func (r *paySlipRepository) Upsert(ctx context.Context, slip payslip.PaySlip) (payslip.PaySlip, error) {
	q := GetQuerier(ctx, r.db)

	detail, err := json.Marshal(slip.DeductionDetail)
	if err != nil {
		return payslip.PaySlip{}, fmt.Errorf("failed to marshal deduction detail: %w", err)
	}

	query := `
		INSERT INTO pay_slips (
			cycle_id, employee_id, gross_salary, net_salary, deduction, deduction_detail,
			worked_days, absent_days, worked_hours, total_paid, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (cycle_id, employee_id) DO UPDATE SET
			gross_salary = EXCLUDED.gross_salary,
			net_salary = EXCLUDED.net_salary,
			deduction = EXCLUDED.deduction,
			deduction_detail = EXCLUDED.deduction_detail,
			worked_days = EXCLUDED.worked_days,
			absent_days = EXCLUDED.absent_days,
			worked_hours = EXCLUDED.worked_hours,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING id, total_paid, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		slip.CycleID, slip.EmployeeID, slip.GrossSalary, slip.NetSalary, slip.Deduction, detail,
		slip.WorkedDays, slip.AbsentDays, slip.WorkedHours, slip.TotalPaid, slip.Status,
	).Scan(&slip.ID, &slip.TotalPaid, &slip.CreatedAt, &slip.UpdatedAt)
	if err != nil {
		return payslip.PaySlip{}, fmt.Errorf("failed to upsert pay slip: %w", err)
	}

	return slip, nil
}

// GetByID implements payslip.PaySlipRepository.
func (r *paySlipRepository) GetByID(ctx context.Context, id string) (payslip.PaySlip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ps.id, ps.cycle_id, ps.employee_id, ps.gross_salary, ps.net_salary, ps.deduction,
			   ps.deduction_detail, ps.worked_days, ps.absent_days, ps.worked_hours,
			   ps.total_paid, ps.status, ps.created_at, ps.updated_at, e.full_name
		FROM pay_slips ps
		JOIN employees e ON e.id = ps.employee_id
		WHERE ps.id = $1
	`

	slip, err := scanSlip(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payslip.PaySlip{}, payslip.ErrSlipNotFound
		}
		return payslip.PaySlip{}, fmt.Errorf("failed to get pay slip: %w", err)
	}

	return slip, nil
}

// GetByIDForUpdate implements payslip.PaySlipRepository. Must be called inside
// a transaction; the row lock is held until it commits or rolls back.
func (r *paySlipRepository) GetByIDForUpdate(ctx context.Context, id string) (payslip.PaySlip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, cycle_id, employee_id, gross_salary, net_salary, deduction,
			   deduction_detail, worked_days, absent_days, worked_hours,
			   total_paid, status, created_at, updated_at
		FROM pay_slips
		WHERE id = $1
		FOR UPDATE
	`

	var slip payslip.PaySlip
	var detail []byte
	err := q.QueryRow(ctx, query, id).Scan(
		&slip.ID, &slip.CycleID, &slip.EmployeeID, &slip.GrossSalary, &slip.NetSalary, &slip.Deduction,
		&detail, &slip.WorkedDays, &slip.AbsentDays, &slip.WorkedHours,
		&slip.TotalPaid, &slip.Status, &slip.CreatedAt, &slip.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payslip.PaySlip{}, payslip.ErrSlipNotFound
		}
		return payslip.PaySlip{}, fmt.Errorf("failed to lock pay slip: %w", err)
	}
	if err := unmarshalDetail(detail, &slip); err != nil {
		return payslip.PaySlip{}, err
	}

	return slip, nil
}

// ListByCycleID implements payslip.PaySlipRepository.
func (r *paySlipRepository) ListByCycleID(ctx context.Context, cycleID string) ([]payslip.PaySlip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ps.id, ps.cycle_id, ps.employee_id, ps.gross_salary, ps.net_salary, ps.deduction,
			   ps.deduction_detail, ps.worked_days, ps.absent_days, ps.worked_hours,
			   ps.total_paid, ps.status, ps.created_at, ps.updated_at, e.full_name
		FROM pay_slips ps
		JOIN employees e ON e.id = ps.employee_id
		WHERE ps.cycle_id = $1
		ORDER BY e.full_name, ps.employee_id
	`

	rows, err := q.Query(ctx, query, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay slips: %w", err)
	}
	defer rows.Close()

	var slips []payslip.PaySlip
	for rows.Next() {
		slip, err := scanSlip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pay slip: %w", err)
		}
		slips = append(slips, slip)
	}

	return slips, rows.Err()
}

// UpdateDerived implements payslip.PaySlipRepository.
func (r *paySlipRepository) UpdateDerived(ctx context.Context, id string, totalPaid decimal.Decimal, status payslip.PaymentStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE pay_slips
		SET total_paid = $2, status = $3, updated_at = NOW()
		WHERE id = $1
	`, id, totalPaid, status)
	if err != nil {
		return fmt.Errorf("failed to update pay slip totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payslip.ErrSlipNotFound
	}

	return nil
}

func scanSlip(row pgx.Row) (payslip.PaySlip, error) {
	var slip payslip.PaySlip
	var detail []byte
	var employeeName string
	err := row.Scan(
		&slip.ID, &slip.CycleID, &slip.EmployeeID, &slip.GrossSalary, &slip.NetSalary, &slip.Deduction,
		&detail, &slip.WorkedDays, &slip.AbsentDays, &slip.WorkedHours,
		&slip.TotalPaid, &slip.Status, &slip.CreatedAt, &slip.UpdatedAt, &employeeName,
	)
	if err != nil {
		return payslip.PaySlip{}, err
	}
	slip.EmployeeName = &employeeName
	if err := unmarshalDetail(detail, &slip); err != nil {
		return payslip.PaySlip{}, err
	}
	return slip, nil
}

func unmarshalDetail(detail []byte, slip *payslip.PaySlip) error {
	if len(detail) == 0 {
		return nil
	}
	if err := json.Unmarshal(detail, &slip.DeductionDetail); err != nil {
		return fmt.Errorf("failed to unmarshal deduction detail: %w", err)
	}
	return nil
}
