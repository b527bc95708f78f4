package scheduling

import (
	"context"

	"comoencasa/models"
)

// SchedulingEngine computes bookable slots from weekly availability and
// current occupancy.
type SchedulingEngine interface {
	// OpenSlots returns the bookable start times ("09:00") of a calendar
	// date, ascending. Past dates and dates without any availability window
	// yield an empty list, never an error.
	OpenSlots(ctx context.Context, date string) ([]string, error)
	// CandidateProviders returns the active providers available to take a
	// session at (date, startTime), sorted ascending by provider ID and
	// excluding every provider already booked at that exact start time.
	CandidateProviders(ctx context.Context, date, startTime string) ([]models.Provider, error)
	// DayOccupancy groups a date's appointments by start time for the
	// booking calendar.
	DayOccupancy(ctx context.Context, date string) (*models.DayOccupancy, error)
	// InvalidateSlots drops the cached open-slots entry for a date after a
	// booking lands on it.
	InvalidateSlots(ctx context.Context, date string)
}

// MatchingService selects the single provider a booking will be placed with.
type MatchingService interface {
	// Resolve validates an explicit provider choice against the candidate
	// set, or auto-assigns one when providerID is nil. Fails with
	// ErrNoProviderAvailable; never writes anything.
	Resolve(ctx context.Context, date, startTime string, providerID *string) (string, error)
}
