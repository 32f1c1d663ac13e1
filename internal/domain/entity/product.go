package entity

import "time"

type Product struct {
	ID          string    `json:"id" firestore:"id"`
	Name        string    `json:"name" firestore:"name"`
	Description string    `json:"description,omitempty" firestore:"description,omitempty"`
	Price       float64   `json:"price" firestore:"price"`
	CategoryID  string    `json:"category_id" firestore:"categoryId"`
	ImageURL    string    `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	Featured    bool      `json:"featured" firestore:"featured"`
	Active      bool      `json:"active" firestore:"active"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}
