package repository

import (
	"context"

	"creacakes/internal/domain/entity"
)

// Orders are created only inside the quote conversion transaction, so this
// interface has no Create.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Order, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}
