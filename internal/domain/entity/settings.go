package entity

import "time"

// SiteSettings is the settings/site singleton document.
type SiteSettings struct {
	SiteName     string    `json:"site_name" firestore:"siteName"`
	Tagline      string    `json:"tagline,omitempty" firestore:"tagline,omitempty"`
	Email        string    `json:"email" firestore:"email"`
	Phone        string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	Address      string    `json:"address,omitempty" firestore:"address,omitempty"`
	OpeningHours string    `json:"opening_hours,omitempty" firestore:"openingHours,omitempty"`
	Facebook     string    `json:"facebook,omitempty" firestore:"facebook,omitempty"`
	Instagram    string    `json:"instagram,omitempty" firestore:"instagram,omitempty"`
	QuotesOpen   bool      `json:"quotes_open" firestore:"quotesOpen"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt"`
}

// PromoSettings is the settings/promo singleton document shown as the
// storefront banner.
type PromoSettings struct {
	Enabled   bool      `json:"enabled" firestore:"enabled"`
	Title     string    `json:"title,omitempty" firestore:"title,omitempty"`
	Message   string    `json:"message,omitempty" firestore:"message,omitempty"`
	StartsAt  time.Time `json:"starts_at,omitempty" firestore:"startsAt,omitempty"`
	EndsAt    time.Time `json:"ends_at,omitempty" firestore:"endsAt,omitempty"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
