package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"creacakes/internal/domain/entity"
	"creacakes/internal/domain/repository"
	"creacakes/pkg/errors"
)

// Settings live as two well-known documents in a single collection.
const (
	siteSettingsDoc  = "site"
	promoSettingsDoc = "promo"
)

type firestoreSettingsRepository struct {
	client *firestore.Client
}

func NewFirestoreSettingsRepository(client *firestore.Client) repository.SettingsRepository {
	return &firestoreSettingsRepository{
		client: client,
	}
}

func (r *firestoreSettingsRepository) GetSite(ctx context.Context) (*entity.SiteSettings, error) {
	doc, err := r.client.Collection("settings").Doc(siteSettingsDoc).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			// First boot: return defaults instead of a 404.
			return &entity.SiteSettings{
				SiteName:   "Créa'Cakes",
				QuotesOpen: true,
			}, nil
		}
		return nil, errors.Internal("Failed to get site settings", err)
	}

	var settings entity.SiteSettings
	if err := doc.DataTo(&settings); err != nil {
		return nil, errors.Internal("Failed to parse site settings", err)
	}

	return &settings, nil
}

func (r *firestoreSettingsRepository) UpdateSite(ctx context.Context, settings *entity.SiteSettings) error {
	settings.UpdatedAt = time.Now()

	_, err := r.client.Collection("settings").Doc(siteSettingsDoc).Set(ctx, settings)
	if err != nil {
		return errors.Internal("Failed to update site settings", err)
	}

	return nil
}

func (r *firestoreSettingsRepository) GetPromo(ctx context.Context) (*entity.PromoSettings, error) {
	doc, err := r.client.Collection("settings").Doc(promoSettingsDoc).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &entity.PromoSettings{Enabled: false}, nil
		}
		return nil, errors.Internal("Failed to get promo settings", err)
	}

	var settings entity.PromoSettings
	if err := doc.DataTo(&settings); err != nil {
		return nil, errors.Internal("Failed to parse promo settings", err)
	}

	return &settings, nil
}

func (r *firestoreSettingsRepository) UpdatePromo(ctx context.Context, settings *entity.PromoSettings) error {
	settings.UpdatedAt = time.Now()

	_, err := r.client.Collection("settings").Doc(promoSettingsDoc).Set(ctx, settings)
	if err != nil {
		return errors.Internal("Failed to update promo settings", err)
	}

	return nil
}
