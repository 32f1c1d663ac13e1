package entity

import "time"

type Category struct {
	ID           string    `json:"id" firestore:"id"`
	Name         string    `json:"name" firestore:"name"`
	Slug         string    `json:"slug" firestore:"slug"`
	Description  string    `json:"description,omitempty" firestore:"description,omitempty"`
	DisplayOrder int       `json:"display_order" firestore:"displayOrder"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt"`
}
