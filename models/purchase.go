package models

import "time"

// Purchase statuses.
const (
	PurchasePending = "pending"
	PurchasePaid    = "paid"
)

// Purchase records one paid checkout. CheckoutSessionID is the payment
// processor's idempotency key and carries a unique index: inserting a second
// purchase for the same checkout session fails, which is how redelivered
// payment events are collapsed into a single provisioning run.
type Purchase struct {
	ID                string    `bson:"id" json:"id"`
	UserID            string    `bson:"user_id" json:"user_id"`
	ServiceID         string    `bson:"service_id" json:"service_id"`
	ProviderID        string    `bson:"provider_id" json:"provider_id"`
	CheckoutSessionID string    `bson:"checkout_session_id" json:"checkout_session_id"`
	AmountCents       int64     `bson:"amount_cents" json:"amount_cents"`
	Currency          string    `bson:"currency" json:"currency"`
	Status            string    `bson:"status" json:"status"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
}
