package entity

import "time"

// Contact is a contact-form submission and, through the Newsletter flag,
// doubles as the newsletter subscriber list.
type Contact struct {
	ID         string    `json:"id" firestore:"id"`
	Name       string    `json:"name,omitempty" firestore:"name,omitempty"`
	Email      string    `json:"email" firestore:"email"`
	Subject    string    `json:"subject,omitempty" firestore:"subject,omitempty"`
	Message    string    `json:"message,omitempty" firestore:"message,omitempty"`
	Newsletter bool      `json:"newsletter" firestore:"newsletter"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt  time.Time `json:"updated_at" firestore:"updatedAt"`
}
