package models

import "time"

// Appointment statuses.
const (
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
)

// Appointment is a confirmed session between a client and a provider.
// The appointments collection holds a unique index on (provider_id, start_at)
// so two concurrent bookings can never land on the same provider and slot;
// the workflow treats that duplicate-key error as its retry signal.
//
// Occupancy is derived from exact start timestamps only: an appointment
// running 09:00-09:50 does NOT mark the provider busy for a hypothetical
// 09:30 slot. Slots are enumerated on whole hours so this cannot happen
// today, but it is a known gap if the granularity ever shrinks.
type Appointment struct {
	ID         string    `bson:"id" json:"id"`
	UserID     string    `bson:"user_id" json:"user_id"`
	ProviderID string    `bson:"provider_id" json:"provider_id"`
	ServiceID  string    `bson:"service_id" json:"service_id"`
	PurchaseID string    `bson:"purchase_id" json:"purchase_id"`
	StartAt    time.Time `bson:"start_at" json:"start_at"`
	EndAt      time.Time `bson:"end_at" json:"end_at"`
	Status     string    `bson:"status" json:"status"`
	Notes      string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
