package repository

import (
	"context"

	"creacakes/internal/domain/entity"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	GetByEmail(ctx context.Context, email string) (*entity.Contact, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Contact, int64, error)
	ListSubscribers(ctx context.Context) ([]*entity.Contact, error)
	SetNewsletter(ctx context.Context, email string, subscribed bool) error
	Delete(ctx context.Context, id string) error
}
