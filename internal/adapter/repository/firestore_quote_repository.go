package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"creacakes/internal/domain/entity"
	"creacakes/internal/domain/repository"
	"creacakes/pkg/errors"
	"creacakes/pkg/logger"
)

type firestoreQuoteRepository struct {
	client *firestore.Client
}

func NewFirestoreQuoteRepository(client *firestore.Client) repository.QuoteRepository {
	return &firestoreQuoteRepository{
		client: client,
	}
}

func (r *firestoreQuoteRepository) Create(ctx context.Context, quote *entity.Quote) error {
	if quote.ID == "" {
		quote.ID = uuid.New().String()
	}

	now := time.Now()
	quote.CreatedAt = now
	quote.UpdatedAt = now

	_, err := r.client.Collection("quotes").Doc(quote.ID).Set(ctx, quote)
	if err != nil {
		return errors.Internal("Failed to create quote", err)
	}

	return nil
}

func (r *firestoreQuoteRepository) GetByID(ctx context.Context, id string) (*entity.Quote, error) {
	doc, err := r.client.Collection("quotes").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Quote", err)
		}
		return nil, errors.Internal("Failed to get quote", err)
	}

	var quote entity.Quote
	if err := doc.DataTo(&quote); err != nil {
		return nil, errors.Internal("Failed to parse quote data", err)
	}

	return &quote, nil
}

func (r *firestoreQuoteRepository) List(ctx context.Context, statusFilter string, limit, offset int) ([]*entity.Quote, int64, error) {
	query := r.client.Collection("quotes").Query
	if statusFilter != "" {
		query = query.Where("status", "==", statusFilter)
	}

	docs, err := query.OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		// Filtered+ordered queries need a composite index; fall back to
		// the unordered query rather than returning an empty screen.
		logger.Warn("Ordered quote query failed, retrying without ordering: %v", err)
		docs, err = query.Documents(ctx).GetAll()
		if err != nil {
			return nil, 0, errors.Internal("Failed to list quotes", err)
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

	var quotes []*entity.Quote
	for _, doc := range docs[start:end] {
		var quote entity.Quote
		if err := doc.DataTo(&quote); err != nil {
			logger.Warn("Skipping malformed quote %s: %v", doc.Ref.ID, err)
			continue
		}
		quotes = append(quotes, &quote)
	}

	return quotes, total, nil
}

func (r *firestoreQuoteRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Quote, int64, error) {
	docs, err := r.client.Collection("quotes").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list quotes for user", err)
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

	var quotes []*entity.Quote
	for _, doc := range docs[start:end] {
		var quote entity.Quote
		if err := doc.DataTo(&quote); err != nil {
			continue
		}
		quotes = append(quotes, &quote)
	}

	return quotes, total, nil
}

func (r *firestoreQuoteRepository) UpdateStatus(ctx context.Context, id, newStatus string) error {
	_, err := r.client.Collection("quotes").Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: newStatus},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Quote", err)
		}
		return errors.Internal("Failed to update quote status", err)
	}

	return nil
}

func (r *firestoreQuoteRepository) Delete(ctx context.Context, id string) error {
	// Messages are left behind in the subcollection; Firestore does not
	// cascade deletes and the admin hard-delete is rare enough to accept
	// orphaned thread documents.
	_, err := r.client.Collection("quotes").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete quote", err)
	}

	return nil
}

// AppendMessage runs the whole append inside one transaction: the sequence
// number comes from the quote's message counter, and the new→contacted
// auto-advance for a first admin reply commits together with the message.
func (r *firestoreQuoteRepository) AppendMessage(ctx context.Context, quoteID string, message *entity.Message) (*entity.Message, error) {
	quoteRef := r.client.Collection("quotes").Doc(quoteID)

	var appended entity.Message

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(quoteRef)
		if err != nil {
			return err
		}

		var quote entity.Quote
		if err := doc.DataTo(&quote); err != nil {
			return err
		}

		appended = *message
		appended.QuoteID = quoteID
		appended.Seq = quote.MessageCount + 1
		appended.CreatedAt = time.Now()
		if appended.ID == "" {
			appended.ID = uuid.New().String()
		}

		updates := []firestore.Update{
			{Path: "messageCount", Value: appended.Seq},
			{Path: "lastMessage", Value: appended.Text},
			{Path: "lastMessageAt", Value: appended.CreatedAt},
			{Path: "updatedAt", Value: appended.CreatedAt},
		}
		if appended.IsAdmin && quote.Status == entity.QuoteStatusNew {
			updates = append(updates, firestore.Update{Path: "status", Value: entity.QuoteStatusContacted})
		}

		msgRef := quoteRef.Collection("messages").Doc(appended.ID)
		if err := tx.Set(msgRef, &appended); err != nil {
			return err
		}

		return tx.Update(quoteRef, updates)
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Quote", err)
		}
		return nil, errors.Internal("Failed to append message", err)
	}

	return &appended, nil
}

func (r *firestoreQuoteRepository) Messages(ctx context.Context, quoteID string, afterSeq int64, limit int) ([]*entity.Message, error) {
	query := r.client.Collection("quotes").Doc(quoteID).Collection("messages").
		Where("seq", ">", afterSeq).
		OrderBy("seq", firestore.Asc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, errors.Internal("Failed to parse message data", err)
		}

		messages = append(messages, &message)
	}

	return messages, nil
}

// Convert creates the order, flips the quote to converted and writes the
// confirmation outbox document in a single transaction. Re-running it
// against a converted quote is a no-op returning the stored order id, so a
// double click cannot produce two orders.
func (r *firestoreQuoteRepository) Convert(ctx context.Context, quoteID string, build repository.ConvertBuilder) (string, error) {
	quoteRef := r.client.Collection("quotes").Doc(quoteID)

	var orderID string

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(quoteRef)
		if err != nil {
			return err
		}

		var quote entity.Quote
		if err := doc.DataTo(&quote); err != nil {
			return err
		}

		if quote.Status == entity.QuoteStatusConverted {
			orderID = quote.OrderID
			return nil
		}

		order, notification, err := build(&quote)
		if err != nil {
			return err
		}

		now := time.Now()
		orderRef := r.client.Collection("orders").NewDoc()
		order.ID = orderRef.ID
		order.QuoteID = quoteID
		order.CreatedAt = now
		order.UpdatedAt = now

		if err := tx.Set(orderRef, order); err != nil {
			return err
		}

		if notification != nil {
			notifRef := r.client.Collection("notifications").NewDoc()
			notification.ID = notifRef.ID
			notification.Status = entity.NotificationStatusPending
			notification.CreatedAt = now
			if notification.Payload == nil {
				notification.Payload = map[string]interface{}{}
			}
			notification.Payload["order_id"] = order.ID
			if err := tx.Set(notifRef, notification); err != nil {
				return err
			}
		}

		orderID = order.ID
		return tx.Update(quoteRef, []firestore.Update{
			{Path: "status", Value: entity.QuoteStatusConverted},
			{Path: "orderId", Value: order.ID},
			{Path: "updatedAt", Value: now},
		})
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", errors.NotFound("Quote", err)
		}
		if appErr, ok := err.(*errors.AppError); ok {
			return "", appErr
		}
		return "", errors.Internal("Failed to convert quote", err)
	}

	return orderID, nil
}
