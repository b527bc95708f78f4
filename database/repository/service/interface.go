package serviceRepo

import (
	"context"
	"errors"

	"comoencasa/models"
)

// ErrNotFound is returned when no service matches the given ID.
var ErrNotFound = errors.New("service not found")

// ServiceRepository reads the purchasable services catalogue. The catalogue
// is edited elsewhere; the booking engine only resolves IDs to prices.
type ServiceRepository interface {
	// GetByID retrieves a service by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Service, error)
	// ListActive retrieves every service currently offered.
	ListActive(ctx context.Context) ([]models.Service, error)
}
