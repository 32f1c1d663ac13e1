package entity

import "time"

const (
	NotificationWelcome           = "welcome"
	NotificationContact           = "contact"
	NotificationContactAdmin      = "contactAdmin"
	NotificationNewQuote          = "newQuote"
	NotificationQuoteMessage      = "quoteMessage"
	NotificationOrderConfirmation = "orderConfirmation"
	NotificationOrderStatus       = "orderStatus"
	NotificationNewsletter        = "newsletter"
)

const (
	NotificationStatusPending = "pending"
	NotificationStatusSent    = "sent"
	NotificationStatusFailed  = "failed"
)

// Notification is an outbox document. Mail is never sent inline with a
// user request; a dispatcher drains pending documents on a schedule, so a
// provider outage can delay mail but never roll back the triggering write.
type Notification struct {
	ID        string                 `json:"id" firestore:"id"`
	Type      string                 `json:"type" firestore:"type"`
	To        string                 `json:"to" firestore:"to"`
	Payload   map[string]interface{} `json:"payload,omitempty" firestore:"payload,omitempty"`
	Status    string                 `json:"status" firestore:"status"`
	Attempts  int                    `json:"attempts" firestore:"attempts"`
	LastError string                 `json:"last_error,omitempty" firestore:"lastError,omitempty"`
	CreatedAt time.Time              `json:"created_at" firestore:"createdAt"`
	SentAt    *time.Time             `json:"sent_at,omitempty" firestore:"sentAt,omitempty"`
}

func ValidNotificationType(t string) bool {
	switch t {
	case NotificationWelcome, NotificationContact, NotificationContactAdmin,
		NotificationNewQuote, NotificationQuoteMessage, NotificationOrderConfirmation,
		NotificationOrderStatus, NotificationNewsletter:
		return true
	}
	return false
}
