package scheduling

import (
	"context"
	"sort"
	"time"

	appointmentRepo "comoencasa/database/repository/appointment"
	providerRepo "comoencasa/database/repository/provider"
	"comoencasa/models"
)

// fakeProviderRepo is an in-memory ProviderRepository.
type fakeProviderRepo struct {
	providers []models.Provider
}

func (f *fakeProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	for i := range f.providers {
		if f.providers[i].ID == id {
			return &f.providers[i], nil
		}
	}
	return nil, providerRepo.ErrNotFound
}

func (f *fakeProviderRepo) ListActive(ctx context.Context) ([]models.Provider, error) {
	var active []models.Provider
	for _, p := range f.providers {
		if p.Active {
			active = append(active, p)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })
	return active, nil
}

func (f *fakeProviderRepo) CountActive(ctx context.Context) (int, error) {
	n := 0
	for _, p := range f.providers {
		if p.Active {
			n++
		}
	}
	return n, nil
}

func (f *fakeProviderRepo) Create(ctx context.Context, provider *models.Provider) error {
	f.providers = append(f.providers, *provider)
	return nil
}

func (f *fakeProviderRepo) SetActive(ctx context.Context, id string, active bool) error {
	for i := range f.providers {
		if f.providers[i].ID == id {
			f.providers[i].Active = active
			return nil
		}
	}
	return providerRepo.ErrNotFound
}

// fakeAvailabilityRepo is an in-memory AvailabilityRepository.
type fakeAvailabilityRepo struct {
	windows []models.AvailabilityWindow
}

func (f *fakeAvailabilityRepo) WindowsForProvider(ctx context.Context, providerID string) ([]models.AvailabilityWindow, error) {
	var out []models.AvailabilityWindow
	for _, w := range f.windows {
		if w.ProviderID == providerID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) WindowsForWeekday(ctx context.Context, weekday int) ([]models.AvailabilityWindow, error) {
	var out []models.AvailabilityWindow
	for _, w := range f.windows {
		if w.Weekday == weekday {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) ReplaceForProvider(ctx context.Context, providerID string, windows []models.AvailabilityWindow) error {
	var kept []models.AvailabilityWindow
	for _, w := range f.windows {
		if w.ProviderID != providerID {
			kept = append(kept, w)
		}
	}
	f.windows = append(kept, windows...)
	return nil
}

// fakeAppointmentRepo is an in-memory AppointmentRepository enforcing the
// unique (provider_id, start_at) constraint the real collection carries.
type fakeAppointmentRepo struct {
	appointments []models.Appointment
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, appointment *models.Appointment) error {
	for _, a := range f.appointments {
		if a.ProviderID == appointment.ProviderID && a.StartAt.Equal(appointment.StartAt) {
			return appointmentRepo.ErrSlotTaken
		}
	}
	f.appointments = append(f.appointments, *appointment)
	return nil
}

func (f *fakeAppointmentRepo) StartingAt(ctx context.Context, startAt time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.StartAt.Equal(startAt) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) InRange(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if !a.StartAt.Before(from) && a.StartAt.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) GetByPurchaseID(ctx context.Context, purchaseID string) (*models.Appointment, error) {
	for i := range f.appointments {
		if f.appointments[i].PurchaseID == purchaseID {
			return &f.appointments[i], nil
		}
	}
	return nil, appointmentRepo.ErrNotFound
}
