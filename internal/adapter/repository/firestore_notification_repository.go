package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"creacakes/internal/domain/entity"
	"creacakes/internal/domain/repository"
	"creacakes/pkg/errors"
)

type firestoreNotificationRepository struct {
	client *firestore.Client
}

func NewFirestoreNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &firestoreNotificationRepository{
		client: client,
	}
}

func (r *firestoreNotificationRepository) Enqueue(ctx context.Context, notification *entity.Notification) error {
	if notification.ID == "" {
		doc := r.client.Collection("notifications").NewDoc()
		notification.ID = doc.ID
	}

	notification.Status = entity.NotificationStatusPending
	notification.CreatedAt = time.Now()

	_, err := r.client.Collection("notifications").Doc(notification.ID).Set(ctx, notification)
	if err != nil {
		return errors.Internal("Failed to enqueue notification", err)
	}

	return nil
}

func (r *firestoreNotificationRepository) ListPending(ctx context.Context, limit int) ([]*entity.Notification, error) {
	query := r.client.Collection("notifications").
		Where("status", "==", entity.NotificationStatusPending).
		OrderBy("createdAt", firestore.Asc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	var notifications []*entity.Notification

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate notifications", err)
		}

		var notification entity.Notification
		if err := doc.DataTo(&notification); err != nil {
			return nil, errors.Internal("Failed to parse notification data", err)
		}
		notifications = append(notifications, &notification)
	}

	return notifications, nil
}

func (r *firestoreNotificationRepository) MarkSent(ctx context.Context, id string) error {
	now := time.Now()

	_, err := r.client.Collection("notifications").Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: entity.NotificationStatusSent},
		{Path: "sentAt", Value: now},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Notification", err)
		}
		return errors.Internal("Failed to mark notification sent", err)
	}

	return nil
}

func (r *firestoreNotificationRepository) MarkFailed(ctx context.Context, id string, attempts int, lastError string, terminal bool) error {
	newStatus := entity.NotificationStatusPending
	if terminal {
		newStatus = entity.NotificationStatusFailed
	}

	_, err := r.client.Collection("notifications").Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: newStatus},
		{Path: "attempts", Value: attempts},
		{Path: "lastError", Value: lastError},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Notification", err)
		}
		return errors.Internal("Failed to mark notification failed", err)
	}

	return nil
}
