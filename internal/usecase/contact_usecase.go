package usecase

import (
	"context"

	"creacakes/internal/domain/entity"
	"creacakes/internal/domain/repository"
	"creacakes/pkg/logger"
)

type ContactUseCase struct {
	contactRepo      repository.ContactRepository
	notificationRepo repository.NotificationRepository
	adminEmail       string
}

func NewContactUseCase(
	contactRepo repository.ContactRepository,
	notificationRepo repository.NotificationRepository,
	adminEmail string,
) *ContactUseCase {
	return &ContactUseCase{
		contactRepo:      contactRepo,
		notificationRepo: notificationRepo,
		adminEmail:       adminEmail,
	}
}

type ContactInput struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Subject    string `json:"subject" validate:"required"`
	Message    string `json:"message" validate:"required,max=5000"`
	Newsletter bool   `json:"newsletter"`
}

// SubmitContact records a contact-form message and queues two emails: an
// acknowledgement to the sender and an alert to the bakery inbox.
func (uc *ContactUseCase) SubmitContact(ctx context.Context, input ContactInput) (*entity.Contact, error) {
	contact := &entity.Contact{
		Name:       input.Name,
		Email:      input.Email,
		Subject:    input.Subject,
		Message:    input.Message,
		Newsletter: input.Newsletter,
	}

	if err := uc.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}

	uc.enqueue(ctx, &entity.Notification{
		Type: entity.NotificationContact,
		To:   contact.Email,
		Payload: map[string]interface{}{
			"name": contact.Name,
		},
	})

	uc.enqueue(ctx, &entity.Notification{
		Type: entity.NotificationContactAdmin,
		To:   uc.adminEmail,
		Payload: map[string]interface{}{
			"name":    contact.Name,
			"email":   contact.Email,
			"subject": contact.Subject,
			"message": contact.Message,
		},
	})

	return contact, nil
}

func (uc *ContactUseCase) ListContacts(ctx context.Context, limit, offset int) ([]*entity.Contact, int64, error) {
	return uc.contactRepo.List(ctx, limit, offset)
}

func (uc *ContactUseCase) Subscribe(ctx context.Context, email string) error {
	return uc.contactRepo.SetNewsletter(ctx, email, true)
}

func (uc *ContactUseCase) Unsubscribe(ctx context.Context, email string) error {
	return uc.contactRepo.SetNewsletter(ctx, email, false)
}

func (uc *ContactUseCase) DeleteContact(ctx context.Context, id string) error {
	return uc.contactRepo.Delete(ctx, id)
}

func (uc *ContactUseCase) enqueue(ctx context.Context, notification *entity.Notification) {
	if err := uc.notificationRepo.Enqueue(ctx, notification); err != nil {
		logger.Error("Failed to enqueue %s notification: %v", notification.Type, err)
	}
}
