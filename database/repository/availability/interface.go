package availabilityRepo

import (
	"context"

	"comoencasa/models"
)

// AvailabilityRepository stores recurring weekly open-time windows.
// The booking engine reads; the admin dashboard replaces a provider's whole
// schedule in one shot whenever it is edited.
type AvailabilityRepository interface {
	// WindowsForProvider retrieves every weekly window of one provider.
	WindowsForProvider(ctx context.Context, providerID string) ([]models.AvailabilityWindow, error)
	// WindowsForWeekday retrieves all windows across providers for a weekday
	// (0 = Sunday .. 6 = Saturday).
	WindowsForWeekday(ctx context.Context, weekday int) ([]models.AvailabilityWindow, error)
	// ReplaceForProvider swaps a provider's schedule: delete all, then insert.
	ReplaceForProvider(ctx context.Context, providerID string, windows []models.AvailabilityWindow) error
}
