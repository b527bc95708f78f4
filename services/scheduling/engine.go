package scheduling

import (
	"fmt"
	"time"

	availabilityRepo "comoencasa/database/repository/availability"
	appointmentRepo "comoencasa/database/repository/appointment"
	providerRepo "comoencasa/database/repository/provider"

	"github.com/go-redis/redis/v8"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// DefaultSchedulingEngine is the production slot planner. It combines the
// weekly availability windows with the day's appointments; the only state it
// holds itself is an optional short-lived redis cache of computed slot lists.
type DefaultSchedulingEngine struct {
	ProviderRepo     providerRepo.ProviderRepository
	AvailabilityRepo availabilityRepo.AvailabilityRepository
	AppointmentRepo  appointmentRepo.AppointmentRepository
	Cache            *redis.Client // optional; nil disables caching

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func (se *DefaultSchedulingEngine) now() time.Time {
	if se.Now != nil {
		return se.Now()
	}
	return time.Now()
}

// startTimestamp combines a date and start time into the UTC instant
// appointments are keyed by.
func startTimestamp(date, startTime string) (time.Time, error) {
	ts, err := time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+startTime, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slot %q %q: %w", date, startTime, err)
	}
	return ts, nil
}

// minutesOfDay parses "09:30" into minutes since midnight.
func minutesOfDay(hhmm string) (int, error) {
	t, err := time.Parse(timeLayout, hhmm)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", hhmm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
