package repository

import (
	"context"

	"creacakes/internal/domain/entity"
)

// ConvertBuilder builds the order and the confirmation outbox document from
// the quote as read inside the conversion transaction.
type ConvertBuilder func(quote *entity.Quote) (*entity.Order, *entity.Notification, error)

type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, id string) (*entity.Quote, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Quote, int64, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Quote, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error

	// AppendMessage assigns the next thread sequence number, creates the
	// message and applies the new→contacted auto-advance in one transaction.
	// The returned message carries its assigned Seq.
	AppendMessage(ctx context.Context, quoteID string, message *entity.Message) (*entity.Message, error)

	// Messages returns thread messages with seq > afterSeq in ascending
	// seq order. afterSeq 0 replays the whole thread.
	Messages(ctx context.Context, quoteID string, afterSeq int64, limit int) ([]*entity.Message, error)

	// Convert runs the quote→order conversion transaction. If the quote is
	// already converted it returns the existing order id without writing.
	Convert(ctx context.Context, quoteID string, build ConvertBuilder) (string, error)
}
