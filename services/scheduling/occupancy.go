package scheduling

import (
	"context"
	"fmt"
	"time"

	"comoencasa/models"
)

// busyProvidersAt returns the set of provider IDs with an appointment whose
// start timestamp equals (date, startTime) exactly.
//
// This matches exact start timestamps, not interval overlap:
// a session running 09:00-09:50 does not mark its provider busy at 09:30.
// Slots are enumerated on whole hours so exact matching is sufficient today,
// but shrinking the granularity without revisiting this would reopen a
// double-booking gap.
func (se *DefaultSchedulingEngine) busyProvidersAt(ctx context.Context, date, startTime string) (map[string]bool, error) {
	ts, err := startTimestamp(date, startTime)
	if err != nil {
		return nil, err
	}

	appointments, err := se.AppointmentRepo.StartingAt(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("failed to read occupancy at %s %s: %w", date, startTime, err)
	}

	busy := make(map[string]bool, len(appointments))
	for _, a := range appointments {
		busy[a.ProviderID] = true
	}
	return busy, nil
}

// DayOccupancy groups a date's appointments by "HH:MM" start time, the shape
// the booking calendar consumes to grey out exhausted slots.
func (se *DefaultSchedulingEngine) DayOccupancy(ctx context.Context, date string) (*models.DayOccupancy, error) {
	dayStart, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	appointments, err := se.AppointmentRepo.InRange(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to read day occupancy for %s: %w", date, err)
	}

	total, err := se.ProviderRepo.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count active providers: %w", err)
	}

	occupancy := make(map[string][]string)
	for _, a := range appointments {
		hhmm := a.StartAt.UTC().Format(timeLayout)
		occupancy[hhmm] = append(occupancy[hhmm], a.ProviderID)
	}

	return &models.DayOccupancy{
		Date:            date,
		TotalTherapists: total,
		Occupancy:       occupancy,
	}, nil
}
