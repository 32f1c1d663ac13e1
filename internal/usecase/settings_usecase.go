package usecase

import (
	"context"
	"time"

	"creacakes/internal/domain/entity"
	"creacakes/internal/domain/repository"
	"creacakes/pkg/errors"
)

type SettingsUseCase struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsUseCase(settingsRepo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{
		settingsRepo: settingsRepo,
	}
}

func (uc *SettingsUseCase) GetSiteSettings(ctx context.Context) (*entity.SiteSettings, error) {
	return uc.settingsRepo.GetSite(ctx)
}

type SiteSettingsInput struct {
	SiteName     string `json:"site_name" validate:"required"`
	Tagline      string `json:"tagline"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	OpeningHours string `json:"opening_hours"`
	Facebook     string `json:"facebook"`
	Instagram    string `json:"instagram"`
	QuotesOpen   bool   `json:"quotes_open"`
}

func (uc *SettingsUseCase) UpdateSiteSettings(ctx context.Context, input SiteSettingsInput) (*entity.SiteSettings, error) {
	settings := &entity.SiteSettings{
		SiteName:     input.SiteName,
		Tagline:      input.Tagline,
		Email:        input.Email,
		Phone:        input.Phone,
		Address:      input.Address,
		OpeningHours: input.OpeningHours,
		Facebook:     input.Facebook,
		Instagram:    input.Instagram,
		QuotesOpen:   input.QuotesOpen,
	}

	if err := uc.settingsRepo.UpdateSite(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// GetPromo returns the promo banner. ActiveOnly trims it to nil outside its
// scheduled window, which is what the public endpoint serves.
func (uc *SettingsUseCase) GetPromo(ctx context.Context, activeOnly bool) (*entity.PromoSettings, error) {
	promo, err := uc.settingsRepo.GetPromo(ctx)
	if err != nil {
		return nil, err
	}

	if activeOnly && !promoActive(promo, time.Now()) {
		return nil, nil
	}

	return promo, nil
}

type PromoInput struct {
	Enabled  bool      `json:"enabled"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

func (uc *SettingsUseCase) UpdatePromo(ctx context.Context, input PromoInput) (*entity.PromoSettings, error) {
	if !input.StartsAt.IsZero() && !input.EndsAt.IsZero() && input.EndsAt.Before(input.StartsAt) {
		return nil, errors.BadRequest("Promo end date is before its start date", nil)
	}

	promo := &entity.PromoSettings{
		Enabled:  input.Enabled,
		Title:    input.Title,
		Message:  input.Message,
		StartsAt: input.StartsAt,
		EndsAt:   input.EndsAt,
	}

	if err := uc.settingsRepo.UpdatePromo(ctx, promo); err != nil {
		return nil, err
	}

	return promo, nil
}

func promoActive(promo *entity.PromoSettings, now time.Time) bool {
	if promo == nil || !promo.Enabled {
		return false
	}
	if !promo.StartsAt.IsZero() && now.Before(promo.StartsAt) {
		return false
	}
	if !promo.EndsAt.IsZero() && now.After(promo.EndsAt) {
		return false
	}
	return true
}
