package models

import "time"

// Service is a purchasable therapy product (single session or a pack).
// It is a read-only input to the booking engine: the duration here is
// advisory, every appointment is booked at utils.SessionDuration.
type Service struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	PriceCents  int64     `bson:"price_cents" json:"price_cents"`
	Currency    string    `bson:"currency" json:"currency"`
	DurationMin int       `bson:"duration_min" json:"duration_min"`
	Sessions    int       `bson:"sessions" json:"sessions"` // pack size, 1 for a single session
	Active      bool      `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
