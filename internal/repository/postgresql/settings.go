package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/opspay/payroll-backend-go/internal/domain/settings"
	"github.com/opspay/payroll-backend-go/internal/pkg/database"
)

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get implements settings.SettingsRepository.
func (r *settingsRepository) Get(ctx context.Context, enterpriseID string) (settings.PayrollSettings, error) {
	q := GetQuerier(ctx, r.db)

	var s settings.PayrollSettings
	err := q.QueryRow(ctx, `
		SELECT enterprise_id, absence_penalty, updated_at
		FROM payroll_settings
		WHERE enterprise_id = $1
	`, enterpriseID).Scan(&s.EnterpriseID, &s.AbsencePenalty, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return settings.PayrollSettings{}, settings.ErrSettingsNotFound
		}
		return settings.PayrollSettings{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}

	return s, nil
}

// Upsert implements settings.SettingsRepository.
func (r *settingsRepository) Upsert(ctx context.Context, s settings.PayrollSettings) (settings.PayrollSettings, error) {
	q := GetQuerier(ctx, r.db)

	err := q.QueryRow(ctx, `
		INSERT INTO payroll_settings (enterprise_id, absence_penalty)
		VALUES ($1, $2)
		ON CONFLICT (enterprise_id) DO UPDATE SET
			absence_penalty = EXCLUDED.absence_penalty,
			updated_at = NOW()
		RETURNING updated_at
	`, s.EnterpriseID, s.AbsencePenalty).Scan(&s.UpdatedAt)
	if err != nil {
		return settings.PayrollSettings{}, fmt.Errorf("failed to upsert payroll settings: %w", err)
	}

	return s, nil
}
