package repository

import (
	"context"

	"creacakes/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByRole(ctx context.Context, role string, limit int) ([]*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, int64, error)
	Update(ctx context.Context, user *entity.User) error
}
