package settings

import "context"

// SettingsRepository defines data access methods for per-enterprise payroll
// settings.
type SettingsRepository interface {
	// Get returns ErrSettingsNotFound when the enterprise has no overrides.
	Get(ctx context.Context, enterpriseID string) (PayrollSettings, error)
	Upsert(ctx context.Context, s PayrollSettings) (PayrollSettings, error)
}
