package entity

import "time"

const (
	QuoteStatusNew       = "new"
	QuoteStatusContacted = "contacted"
	QuoteStatusQuoted    = "quoted"
	QuoteStatusAccepted  = "accepted"
	QuoteStatusDeclined  = "declined"
	QuoteStatusConverted = "converted"
)

const (
	EventTypeWedding     = "wedding"
	EventTypeBirthday    = "birthday"
	EventTypeChristening = "christening"
	EventTypeCorporate   = "corporate"
	EventTypeOther       = "other"
)

// QuoteProduct is a catalog snapshot taken at submission time. Name and
// price are copied so later catalog edits never change the quote.
type QuoteProduct struct {
	ProductID   string  `json:"product_id" firestore:"productId"`
	ProductName string  `json:"product_name" firestore:"productName"`
	Quantity    int     `json:"quantity" firestore:"quantity"`
	Price       float64 `json:"price" firestore:"price"`
}

type Quote struct {
	ID             string `json:"id" firestore:"id"`
	Name           string `json:"name" firestore:"name"`
	Email          string `json:"email" firestore:"email"`
	Phone          string `json:"phone" firestore:"phone"`
	EventType      string `json:"event_type" firestore:"eventType"`
	EventTypeOther string `json:"event_type_other,omitempty" firestore:"eventTypeOther,omitempty"`
	EventDate      string `json:"event_date" firestore:"eventDate"` // calendar date, no time component
	GuestCount     string `json:"guest_count,omitempty" firestore:"guestCount,omitempty"`
	Budget         string `json:"budget,omitempty" firestore:"budget,omitempty"`
	Description    string `json:"description,omitempty" firestore:"description,omitempty"`
	UserID         string `json:"user_id,omitempty" firestore:"userId,omitempty"` // empty for anonymous submissions

	SelectedProducts []QuoteProduct `json:"selected_products" firestore:"selectedProducts"`
	EstimatedTotal   float64        `json:"estimated_total" firestore:"estimatedTotal"`

	Status  string `json:"status" firestore:"status"`
	OrderID string `json:"order_id,omitempty" firestore:"orderId,omitempty"` // set once converted

	// Thread bookkeeping. MessageCount doubles as the sequence counter
	// for messages, bumped transactionally on every append.
	MessageCount  int64     `json:"message_count" firestore:"messageCount"`
	LastMessage   string    `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt time.Time `json:"last_message_at,omitempty" firestore:"lastMessageAt,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// EstimateTotal computes the stored estimate from the snapshotted prices.
// It is calculated once at submission and never recomputed from the catalog.
func EstimateTotal(products []QuoteProduct) float64 {
	var total float64
	for _, p := range products {
		total += p.Price * float64(p.Quantity)
	}
	return total
}

func ValidQuoteStatus(status string) bool {
	switch status {
	case QuoteStatusNew, QuoteStatusContacted, QuoteStatusQuoted,
		QuoteStatusAccepted, QuoteStatusDeclined, QuoteStatusConverted:
		return true
	}
	return false
}

func ValidEventType(eventType string) bool {
	switch eventType {
	case EventTypeWedding, EventTypeBirthday, EventTypeChristening,
		EventTypeCorporate, EventTypeOther:
		return true
	}
	return false
}

// CanTransition reports whether the admin status selector may move the
// quote to next. Conversion is not a selector transition; it goes through
// the conversion workflow, which accepts any non-converted quote.
func (q *Quote) CanTransition(next string) bool {
	if !ValidQuoteStatus(next) || next == q.Status {
		return false
	}

	switch q.Status {
	case QuoteStatusNew:
		return next == QuoteStatusContacted
	case QuoteStatusContacted:
		return next == QuoteStatusQuoted
	case QuoteStatusQuoted:
		return next == QuoteStatusAccepted || next == QuoteStatusDeclined
	}

	// accepted, declined and converted are terminal for the selector
	return false
}

// Convertible reports whether the conversion workflow may run. Declined
// quotes stay convertible; only an already converted quote is refused.
func (q *Quote) Convertible() bool {
	return q.Status != QuoteStatusConverted
}
