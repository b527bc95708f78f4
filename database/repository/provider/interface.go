package providerRepo

import (
	"context"
	"errors"

	"comoencasa/models"
)

// ErrNotFound is returned when no provider matches the given ID.
var ErrNotFound = errors.New("provider not found")

// ProviderRepository defines read/write access to therapist records.
// The booking engine only uses the read side; writes belong to the admin
// dashboard handlers.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	// ListActive retrieves all providers currently accepting bookings.
	ListActive(ctx context.Context) ([]models.Provider, error)
	// CountActive returns how many providers are currently active.
	CountActive(ctx context.Context) (int, error)
	// Create inserts a new provider record.
	Create(ctx context.Context, provider *models.Provider) error
	// SetActive flips a provider's active flag.
	SetActive(ctx context.Context, id string, active bool) error
}
