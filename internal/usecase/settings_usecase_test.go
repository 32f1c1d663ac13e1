package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creacakes/internal/domain/entity"
	"creacakes/pkg/errors"
)

func TestPromoActiveWindow(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	assert.False(t, promoActive(nil, now))
	assert.False(t, promoActive(&entity.PromoSettings{Enabled: false}, now))

	// Enabled with no window is always active.
	assert.True(t, promoActive(&entity.PromoSettings{Enabled: true}, now))

	assert.False(t, promoActive(&entity.PromoSettings{
		Enabled:  true,
		StartsAt: now.Add(time.Hour),
	}, now))

	assert.False(t, promoActive(&entity.PromoSettings{
		Enabled: true,
		EndsAt:  now.Add(-time.Hour),
	}, now))

	assert.True(t, promoActive(&entity.PromoSettings{
		Enabled:  true,
		StartsAt: now.Add(-time.Hour),
		EndsAt:   now.Add(time.Hour),
	}, now))
}

func TestGetPromoActiveOnlyHidesDisabledBanner(t *testing.T) {
	settings := newFakeSettingsRepo()
	uc := NewSettingsUseCase(settings)

	promo, err := uc.GetPromo(context.Background(), true)
	require.NoError(t, err)
	assert.Nil(t, promo)

	// The admin view always sees the stored document.
	promo, err = uc.GetPromo(context.Background(), false)
	require.NoError(t, err)
	require.NotNil(t, promo)
	assert.False(t, promo.Enabled)
}

func TestUpdatePromoRejectsInvertedWindow(t *testing.T) {
	uc := NewSettingsUseCase(newFakeSettingsRepo())

	now := time.Now()
	_, err := uc.UpdatePromo(context.Background(), PromoInput{
		Enabled:  true,
		StartsAt: now,
		EndsAt:   now.Add(-time.Hour),
	})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestUpdateSiteSettingsRoundTrip(t *testing.T) {
	settings := newFakeSettingsRepo()
	uc := NewSettingsUseCase(settings)

	_, err := uc.UpdateSiteSettings(context.Background(), SiteSettingsInput{
		SiteName:   "Créa'Cakes",
		QuotesOpen: false,
	})
	require.NoError(t, err)

	site, err := uc.GetSiteSettings(context.Background())
	require.NoError(t, err)
	assert.False(t, site.QuotesOpen)
}
