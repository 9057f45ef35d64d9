package settings

import (
	"context"
	"testing"

	"github.com/opspay/payroll-backend-go/internal/domain/settings"
	"github.com/opspay/payroll-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEnterpriseID = "ent-acme"

func newSettingsService(t *testing.T) *SettingsService {
	t.Helper()
	store := memory.NewStore()
	return NewSettingsService(memory.NewSettingsRepository(store), decimal.NewFromInt(15000))
}

func TestSettingsService_GetSettings_DefaultsWithoutOverride(t *testing.T) {
	t.Parallel()
	service := newSettingsService(t)

	resp, err := service.GetSettings(context.Background(), testEnterpriseID)
	require.NoError(t, err)
	assert.True(t, resp.Default)
	assert.True(t, resp.AbsencePenalty.Equal(decimal.NewFromInt(15000)))
	assert.Nil(t, resp.UpdatedAt)
}

func TestSettingsService_UpdateSettings_OverridesDefault(t *testing.T) {
	t.Parallel()
	service := newSettingsService(t)
	ctx := context.Background()

	updated, err := service.UpdateSettings(ctx, testEnterpriseID, settings.UpdateSettingsRequest{
		AbsencePenalty: decimal.NewFromInt(20000),
	})
	require.NoError(t, err)
	assert.False(t, updated.Default)
	assert.True(t, updated.AbsencePenalty.Equal(decimal.NewFromInt(20000)))
	require.NotNil(t, updated.UpdatedAt)

	got, err := service.GetSettings(ctx, testEnterpriseID)
	require.NoError(t, err)
	assert.False(t, got.Default)
	assert.True(t, got.AbsencePenalty.Equal(decimal.NewFromInt(20000)))
}

func TestSettingsService_UpdateSettings_RejectsNegativePenalty(t *testing.T) {
	t.Parallel()
	service := newSettingsService(t)

	_, err := service.UpdateSettings(context.Background(), testEnterpriseID, settings.UpdateSettingsRequest{
		AbsencePenalty: decimal.NewFromInt(-1),
	})
	assert.Error(t, err)
}

func TestSettingsService_GetSettings_ScopedPerEnterprise(t *testing.T) {
	t.Parallel()
	service := newSettingsService(t)
	ctx := context.Background()

	_, err := service.UpdateSettings(ctx, testEnterpriseID, settings.UpdateSettingsRequest{
		AbsencePenalty: decimal.NewFromInt(20000),
	})
	require.NoError(t, err)

	other, err := service.GetSettings(ctx, "ent-other")
	require.NoError(t, err)
	assert.True(t, other.Default)
	assert.True(t, other.AbsencePenalty.Equal(decimal.NewFromInt(15000)))
}
