package repository

import (
	"context"

	"creacakes/internal/domain/entity"
)

type NotificationRepository interface {
	Enqueue(ctx context.Context, notification *entity.Notification) error
	ListPending(ctx context.Context, limit int) ([]*entity.Notification, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, attempts int, lastError string, terminal bool) error
}
