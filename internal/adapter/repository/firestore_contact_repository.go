package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"creacakes/internal/domain/entity"
	"creacakes/internal/domain/repository"
	"creacakes/pkg/errors"
)

type firestoreContactRepository struct {
	client *firestore.Client
}

func NewFirestoreContactRepository(client *firestore.Client) repository.ContactRepository {
	return &firestoreContactRepository{
		client: client,
	}
}

func (r *firestoreContactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}

	now := time.Now()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	_, err := r.client.Collection("contacts").Doc(contact.ID).Set(ctx, contact)
	if err != nil {
		return errors.Internal("Failed to create contact", err)
	}

	return nil
}

func (r *firestoreContactRepository) GetByEmail(ctx context.Context, email string) (*entity.Contact, error) {
	iter := r.client.Collection("contacts").Where("email", "==", email).Limit(1).Documents(ctx)

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Contact", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query contact by email", err)
	}

	var contact entity.Contact
	if err := doc.DataTo(&contact); err != nil {
		return nil, errors.Internal("Failed to parse contact data", err)
	}

	return &contact, nil
}

func (r *firestoreContactRepository) List(ctx context.Context, limit, offset int) ([]*entity.Contact, int64, error) {
	docs, err := r.client.Collection("contacts").
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list contacts", err)
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

	var contacts []*entity.Contact
	for _, doc := range docs[start:end] {
		var contact entity.Contact
		if err := doc.DataTo(&contact); err != nil {
			continue
		}
		contacts = append(contacts, &contact)
	}

	return contacts, total, nil
}

func (r *firestoreContactRepository) ListSubscribers(ctx context.Context) ([]*entity.Contact, error) {
	iter := r.client.Collection("contacts").Where("newsletter", "==", true).Documents(ctx)

	var subscribers []*entity.Contact
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate subscribers", err)
		}

		var contact entity.Contact
		if err := doc.DataTo(&contact); err != nil {
			return nil, errors.Internal("Failed to parse contact data", err)
		}
		subscribers = append(subscribers, &contact)
	}

	return subscribers, nil
}

func (r *firestoreContactRepository) SetNewsletter(ctx context.Context, email string, subscribed bool) error {
	contact, err := r.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			if !subscribed {
				// Unsubscribing an unknown address is a no-op.
				return nil
			}
			contact = &entity.Contact{Email: email, Newsletter: true}
			return r.Create(ctx, contact)
		}
		return err
	}

	_, err = r.client.Collection("contacts").Doc(contact.ID).Update(ctx, []firestore.Update{
		{Path: "newsletter", Value: subscribed},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errors.Internal("Failed to update newsletter subscription", err)
	}

	return nil
}

func (r *firestoreContactRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("contacts").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete contact", err)
	}

	return nil
}
