package memory

import (
	"context"
	"time"

	"github.com/opspay/payroll-backend-go/internal/domain/settings"
)

type settingsRepository struct {
	store *Store
}

func NewSettingsRepository(store *Store) settings.SettingsRepository {
	return &settingsRepository{store: store}
}

func (r *settingsRepository) Get(ctx context.Context, enterpriseID string) (settings.PayrollSettings, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.settings[enterpriseID]
	if !ok {
		return settings.PayrollSettings{}, settings.ErrSettingsNotFound
	}
	return s, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, s settings.PayrollSettings) (settings.PayrollSettings, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s.UpdatedAt = time.Now()
	r.store.settings[s.EnterpriseID] = s
	return s, nil
}
