package usecase

import (
	"context"

	"creacakes/internal/domain/entity"
	"creacakes/internal/domain/repository"
	"creacakes/pkg/errors"
	"creacakes/pkg/logger"
)

type NewsletterUseCase struct {
	contactRepo      repository.ContactRepository
	notificationRepo repository.NotificationRepository
}

func NewNewsletterUseCase(
	contactRepo repository.ContactRepository,
	notificationRepo repository.NotificationRepository,
) *NewsletterUseCase {
	return &NewsletterUseCase{
		contactRepo:      contactRepo,
		notificationRepo: notificationRepo,
	}
}

type NewsletterInput struct {
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

// SendCampaign queues one outbox document per subscriber. The dispatcher
// drains them at its own pace, so a big list never blocks the admin request.
func (uc *NewsletterUseCase) SendCampaign(ctx context.Context, input NewsletterInput) (int, error) {
	subscribers, err := uc.contactRepo.ListSubscribers(ctx)
	if err != nil {
		return 0, err
	}
	if len(subscribers) == 0 {
		return 0, errors.BadRequest("No newsletter subscribers", nil)
	}

	queued := 0
	for _, subscriber := range subscribers {
		notification := &entity.Notification{
			Type: entity.NotificationNewsletter,
			To:   subscriber.Email,
			Payload: map[string]interface{}{
				"subject": input.Subject,
				"body":    input.Body,
			},
		}
		if err := uc.notificationRepo.Enqueue(ctx, notification); err != nil {
			logger.Error("Failed to enqueue newsletter for %s: %v", subscriber.Email, err)
			continue
		}
		queued++
	}

	return queued, nil
}

func (uc *NewsletterUseCase) ListSubscribers(ctx context.Context) ([]*entity.Contact, error) {
	return uc.contactRepo.ListSubscribers(ctx)
}
