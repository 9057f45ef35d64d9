package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/opspay/payroll-backend-go/internal/domain/paycycle"
	"github.com/opspay/payroll-backend-go/internal/pkg/database"
)

type payCycleRepository struct {
	db *database.DB
}

func NewPayCycleRepository(db *database.DB) paycycle.PayCycleRepository {
	return &payCycleRepository{db: db}
}

// Create implements paycycle.PayCycleRepository.
func (r *payCycleRepository) Create(ctx context.Context, cycle paycycle.PayCycle) (paycycle.PayCycle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pay_cycles (enterprise_id, period, start_date, end_date, state)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		cycle.EnterpriseID, cycle.Period, cycle.StartDate, cycle.EndDate, cycle.State,
	).Scan(&cycle.ID, &cycle.CreatedAt, &cycle.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return paycycle.PayCycle{}, paycycle.ErrPeriodAlreadyExists
		}
		return paycycle.PayCycle{}, fmt.Errorf("failed to create pay cycle: %w", err)
	}

	return cycle, nil
}

// GetByID implements paycycle.PayCycleRepository.
func (r *payCycleRepository) GetByID(ctx context.Context, id string) (paycycle.PayCycle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, enterprise_id, period, start_date, end_date, state, created_at, updated_at
		FROM pay_cycles
		WHERE id = $1
	`

	var cycle paycycle.PayCycle
	err := q.QueryRow(ctx, query, id).Scan(
		&cycle.ID, &cycle.EnterpriseID, &cycle.Period, &cycle.StartDate,
		&cycle.EndDate, &cycle.State, &cycle.CreatedAt, &cycle.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return paycycle.PayCycle{}, paycycle.ErrCycleNotFound
		}
		return paycycle.PayCycle{}, fmt.Errorf("failed to get pay cycle: %w", err)
	}

	return cycle, nil
}

// ListByEnterpriseID implements paycycle.PayCycleRepository.
func (r *payCycleRepository) ListByEnterpriseID(ctx context.Context, enterpriseID string) ([]paycycle.PayCycle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, enterprise_id, period, start_date, end_date, state, created_at, updated_at
		FROM pay_cycles
		WHERE enterprise_id = $1
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query, enterpriseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay cycles: %w", err)
	}
	defer rows.Close()

	var cycles []paycycle.PayCycle
	for rows.Next() {
		var cycle paycycle.PayCycle
		if err := rows.Scan(
			&cycle.ID, &cycle.EnterpriseID, &cycle.Period, &cycle.StartDate,
			&cycle.EndDate, &cycle.State, &cycle.CreatedAt, &cycle.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pay cycle: %w", err)
		}
		cycles = append(cycles, cycle)
	}

	return cycles, rows.Err()
}

// UpdateState implements paycycle.PayCycleRepository.
func (r *payCycleRepository) UpdateState(ctx context.Context, id string, state paycycle.State) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE pay_cycles
		SET state = $2, updated_at = NOW()
		WHERE id = $1
	`, id, state)
	if err != nil {
		return fmt.Errorf("failed to update cycle state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return paycycle.ErrCycleNotFound
	}

	return nil
}
