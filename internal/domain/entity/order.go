package entity

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelivered = "delivered"
)

// Order is created only by converting a quote. Contact, event and product
// fields are copied from the quote, not re-linked to the catalog.
type Order struct {
	ID        string         `json:"id" firestore:"id"`
	QuoteID   string         `json:"quote_id" firestore:"quoteId"`
	Name      string         `json:"name" firestore:"name"`
	Email     string         `json:"email" firestore:"email"`
	Phone     string         `json:"phone" firestore:"phone"`
	EventType string         `json:"event_type" firestore:"eventType"`
	EventDate string         `json:"event_date" firestore:"eventDate"`
	Products  []QuoteProduct `json:"products" firestore:"products"`
	Total     float64        `json:"total" firestore:"total"`
	Status    string         `json:"status" firestore:"status"`
	CreatedAt time.Time      `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time      `json:"updated_at" firestore:"updatedAt"`
}

func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusDelivered:
		return true
	}
	return false
}
