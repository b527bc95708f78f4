package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"comoencasa/models"
)

var (
	// ErrNotFound is returned when no appointment matches the lookup.
	ErrNotFound = errors.New("appointment not found")
	// ErrSlotTaken is returned when an insert collides with the unique
	// (provider_id, start_at) index, i.e. another booking won the slot
	// between provider resolution and this write. Callers retry resolution
	// rather than trusting their earlier occupancy read.
	ErrSlotTaken = errors.New("provider already booked at this start time")
)

// AppointmentRepository stores confirmed appointments. Only the provisioning
// workflow writes here; slot queries read.
type AppointmentRepository interface {
	// Create inserts an appointment. Returns ErrSlotTaken when the provider
	// already has an appointment at the same start timestamp.
	Create(ctx context.Context, appointment *models.Appointment) error
	// StartingAt retrieves all appointments with exactly this start timestamp.
	StartingAt(ctx context.Context, startAt time.Time) ([]models.Appointment, error)
	// InRange retrieves appointments with start_at in [from, to).
	InRange(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
	// GetByPurchaseID retrieves the appointment provisioned for a purchase.
	GetByPurchaseID(ctx context.Context, purchaseID string) (*models.Appointment, error)
}
