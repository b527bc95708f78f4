package purchaseRepo

import (
	"context"
	"errors"

	"comoencasa/models"
)

var (
	// ErrNotFound is returned when no purchase matches the lookup.
	ErrNotFound = errors.New("purchase not found")
	// ErrDuplicateCheckoutSession is returned when an insert collides with
	// the unique checkout_session_id index. Stripe delivers events at least
	// once; this error is how a redelivered payment confirmation is detected
	// and collapsed instead of creating a second purchase.
	ErrDuplicateCheckoutSession = errors.New("purchase for this checkout session already exists")
)

// PurchaseRepository stores paid checkout records. Only the provisioning
// workflow writes here.
type PurchaseRepository interface {
	// Create inserts a purchase. Returns ErrDuplicateCheckoutSession when a
	// purchase with the same checkout session ID already exists.
	Create(ctx context.Context, purchase *models.Purchase) error
	// GetByCheckoutSessionID retrieves a purchase by its idempotency key.
	GetByCheckoutSessionID(ctx context.Context, sessionID string) (*models.Purchase, error)
	// UpdateProvider rewrites the assigned provider, used when the workflow
	// reassigns after losing a slot race.
	UpdateProvider(ctx context.Context, id, providerID string) error
	// ListByUser retrieves a client's purchases, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Purchase, error)
}
