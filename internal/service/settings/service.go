package settings

import (
	"context"
	"fmt"

	"github.com/opspay/payroll-backend-go/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// SettingsService exposes per-enterprise payroll settings. Enterprises
// without an override see the configured defaults.
type SettingsService struct {
	settingsRepo   settings.SettingsRepository
	defaultPenalty decimal.Decimal
}

func NewSettingsService(settingsRepo settings.SettingsRepository, defaultPenalty decimal.Decimal) *SettingsService {
	return &SettingsService{
		settingsRepo:   settingsRepo,
		defaultPenalty: defaultPenalty,
	}
}

func (s *SettingsService) GetSettings(ctx context.Context, enterpriseID string) (settings.SettingsResponse, error) {
	stored, err := s.settingsRepo.Get(ctx, enterpriseID)
	if err != nil {
		if err == settings.ErrSettingsNotFound {
			return settings.ToSettingsResponse(settings.PayrollSettings{
				EnterpriseID:   enterpriseID,
				AbsencePenalty: s.defaultPenalty,
			}, true), nil
		}
		return settings.SettingsResponse{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}
	return settings.ToSettingsResponse(stored, false), nil
}

func (s *SettingsService) UpdateSettings(ctx context.Context, enterpriseID string, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	stored, err := s.settingsRepo.Upsert(ctx, settings.PayrollSettings{
		EnterpriseID:   enterpriseID,
		AbsencePenalty: req.AbsencePenalty,
	})
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to update payroll settings: %w", err)
	}
	return settings.ToSettingsResponse(stored, false), nil
}
