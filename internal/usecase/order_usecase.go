package usecase

import (
	"context"
	"fmt"

	"creacakes/internal/domain/entity"
	"creacakes/internal/domain/repository"
	"creacakes/pkg/errors"
	"creacakes/pkg/logger"
)

type OrderUseCase struct {
	orderRepo        repository.OrderRepository
	notificationRepo repository.NotificationRepository
}

func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	notificationRepo repository.NotificationRepository,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:        orderRepo,
		notificationRepo: notificationRepo,
	}
}

func (uc *OrderUseCase) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	return uc.orderRepo.GetByID(ctx, id)
}

func (uc *OrderUseCase) ListOrders(ctx context.Context, status string, limit, offset int) ([]*entity.Order, int64, error) {
	if status != "" && !entity.ValidOrderStatus(status) {
		return nil, 0, errors.BadRequest("Invalid status filter", nil)
	}
	return uc.orderRepo.List(ctx, status, limit, offset)
}

// UpdateStatus moves an order along the fulfilment pipeline and queues a
// status email to the customer.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id, newStatus string) (*entity.Order, error) {
	if !entity.ValidOrderStatus(newStatus) {
		return nil, errors.BadRequest(fmt.Sprintf("Invalid order status: %s", newStatus), nil)
	}

	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status == newStatus {
		return order, nil
	}

	if err := uc.orderRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	order.Status = newStatus

	if order.Email != "" {
		notification := &entity.Notification{
			Type: entity.NotificationOrderStatus,
			To:   order.Email,
			Payload: map[string]interface{}{
				"name":     order.Name,
				"order_id": order.ID,
				"status":   newStatus,
			},
		}
		if err := uc.notificationRepo.Enqueue(ctx, notification); err != nil {
			logger.Error("Failed to enqueue order status notification: %v", err)
		}
	}

	return order, nil
}

func (uc *OrderUseCase) DeleteOrder(ctx context.Context, id string) error {
	if _, err := uc.orderRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.orderRepo.Delete(ctx, id)
}
