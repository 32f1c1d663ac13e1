package usecase

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"creacakes/internal/domain/repository"
	"creacakes/pkg/logger"
)

// NotificationUseCase drains the notification outbox. A cron schedule picks
// up pending documents in batches and hands them to the mailer; failures are
// retried on later runs until the attempt budget runs out.
type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	mailer           Mailer
	batchSize        int
	maxTries         int
	cron             *cron.Cron
	running          atomic.Bool
}

func NewNotificationUseCase(
	notificationRepo repository.NotificationRepository,
	mailer Mailer,
	batchSize, maxTries int,
) *NotificationUseCase {
	if batchSize <= 0 {
		batchSize = 25
	}
	if maxTries <= 0 {
		maxTries = 5
	}

	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		mailer:           mailer,
		batchSize:        batchSize,
		maxTries:         maxTries,
	}
}

// StartDispatcher schedules the outbox drain every minute.
func (uc *NotificationUseCase) StartDispatcher(ctx context.Context) error {
	uc.cron = cron.New()

	_, err := uc.cron.AddFunc("* * * * *", func() {
		runCtx, cancel := context.WithTimeout(ctx, 50*time.Second)
		defer cancel()

		if _, err := uc.Dispatch(runCtx); err != nil {
			logger.Error("Outbox dispatch run failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	uc.cron.Start()
	logger.Info("Notification dispatcher started (batch size %d)", uc.batchSize)

	go func() {
		<-ctx.Done()
		uc.cron.Stop()
	}()

	return nil
}

// Dispatch drains one batch of pending notifications and reports how many
// were sent. Overlapping runs are skipped.
func (uc *NotificationUseCase) Dispatch(ctx context.Context) (int, error) {
	if !uc.running.CompareAndSwap(false, true) {
		return 0, nil
	}
	defer uc.running.Store(false)

	pending, err := uc.notificationRepo.ListPending(ctx, uc.batchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, notification := range pending {
		if err := uc.mailer.Send(ctx, notification); err != nil {
			attempts := notification.Attempts + 1
			terminal := attempts >= uc.maxTries
			if terminal {
				logger.Error("Notification %s (%s) failed permanently after %d attempts: %v",
					notification.ID, notification.Type, attempts, err)
			} else {
				logger.Warn("Notification %s (%s) failed, attempt %d: %v",
					notification.ID, notification.Type, attempts, err)
			}
			if markErr := uc.notificationRepo.MarkFailed(ctx, notification.ID, attempts, err.Error(), terminal); markErr != nil {
				logger.Error("Failed to record notification failure: %v", markErr)
			}
			continue
		}

		if err := uc.notificationRepo.MarkSent(ctx, notification.ID); err != nil {
			logger.Error("Failed to mark notification %s sent: %v", notification.ID, err)
			continue
		}
		sent++
	}

	return sent, nil
}
