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
	"creacakes/pkg/logger"
)

type firestoreOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &firestoreOrderRepository{
		client: client,
	}
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := r.client.Collection("orders").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Order", err)
		}
		return nil, errors.Internal("Failed to get order", err)
	}

	var order entity.Order
	if err := doc.DataTo(&order); err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}

	return &order, nil
}

func (r *firestoreOrderRepository) List(ctx context.Context, statusFilter string, limit, offset int) ([]*entity.Order, int64, error) {
	query := r.client.Collection("orders").Query
	if statusFilter != "" {
		query = query.Where("status", "==", statusFilter)
	}

	docs, err := query.OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		logger.Warn("Ordered order query failed, retrying without ordering: %v", err)
		docs, err = query.Documents(ctx).GetAll()
		if err != nil {
			return nil, 0, errors.Internal("Failed to list orders", err)
		}
	}

	total := int64(len(docs))

	start := offset
	if start > len(docs) {
		start = len(docs)
	}
	end := len(docs)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	var orders []*entity.Order
	for _, doc := range docs[start:end] {
		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			logger.Warn("Skipping malformed order %s: %v", doc.Ref.ID, err)
			continue
		}
		orders = append(orders, &order)
	}

	return orders, total, nil
}

func (r *firestoreOrderRepository) UpdateStatus(ctx context.Context, id, newStatus string) error {
	_, err := r.client.Collection("orders").Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: newStatus},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Order", err)
		}
		return errors.Internal("Failed to update order status", err)
	}

	return nil
}

func (r *firestoreOrderRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("orders").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete order", err)
	}

	return nil
}
