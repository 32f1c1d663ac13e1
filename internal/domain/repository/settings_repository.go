package repository

import (
	"context"

	"creacakes/internal/domain/entity"
)

type SettingsRepository interface {
	GetSite(ctx context.Context) (*entity.SiteSettings, error)
	UpdateSite(ctx context.Context, settings *entity.SiteSettings) error
	GetPromo(ctx context.Context) (*entity.PromoSettings, error)
	UpdatePromo(ctx context.Context, settings *entity.PromoSettings) error
}
