package models

import "time"

// Provider represents a therapist bookable for appointments. Providers are
// created and deactivated by the admin dashboard; the booking engine only
// ever reads them.
type Provider struct {
	ID        string    `bson:"id" json:"id"`
	FullName  string    `bson:"full_name" json:"full_name"`
	Email     string    `bson:"email" json:"email"`
	Bio       string    `bson:"bio,omitempty" json:"bio,omitempty"`
	PhotoURL  string    `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	Active    bool      `bson:"is_active" json:"is_active"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ProviderSummary is the public shape returned to the booking UI when listing
// candidate therapists for a slot.
type ProviderSummary struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// Summary strips a provider down to its public fields.
func (p Provider) Summary() ProviderSummary {
	return ProviderSummary{
		ID:       p.ID,
		FullName: p.FullName,
		PhotoURL: p.PhotoURL,
	}
}
