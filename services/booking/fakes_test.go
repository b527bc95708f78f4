package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	appointmentRepo "comoencasa/database/repository/appointment"
	providerRepo "comoencasa/database/repository/provider"
	purchaseRepo "comoencasa/database/repository/purchase"
	serviceRepo "comoencasa/database/repository/service"
	userRepo "comoencasa/database/repository/user"
	"comoencasa/models"
)

// fakeIdentity is an in-memory identity.Service.
type fakeIdentity struct {
	mu          sync.Mutex
	users       map[string]*models.User // keyed by email
	createdIDs  []string
	profileSets int
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{users: make(map[string]*models.User)}
}

func (f *fakeIdentity) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, userRepo.ErrNotFound
}

func (f *fakeIdentity) EnsureClient(ctx context.Context, email, fullName, phone string) (*models.User, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[email]; ok {
		return u, false, nil
	}
	u := &models.User{
		ID:       "user-" + email,
		Email:    email,
		FullName: fullName,
		Phone:    phone,
		Role:     models.RoleClient,
	}
	f.users[email] = u
	f.createdIDs = append(f.createdIDs, u.ID)
	return u, true, nil
}

func (f *fakeIdentity) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (f *fakeIdentity) EnsureProfile(ctx context.Context, id, fullName, phone string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profileSets++
	return nil
}

func (f *fakeIdentity) GenerateSetupLink(user *models.User) (string, error) {
	return "https://example.test/setup?token=" + user.ID, nil
}

// fakeMatcher resolves providers from a scripted function.
type fakeMatcher struct {
	mu          sync.Mutex
	resolveFunc func(providerID *string) (string, error)
	calls       int
}

func (f *fakeMatcher) Resolve(ctx context.Context, date, startTime string, providerID *string) (string, error) {
	f.mu.Lock()
	f.calls++
	fn := f.resolveFunc
	f.mu.Unlock()
	return fn(providerID)
}

// fakeEngine only records slot invalidations; the planner itself is covered
// by its own package tests.
type fakeEngine struct {
	mu          sync.Mutex
	invalidated []string
}

func (f *fakeEngine) OpenSlots(ctx context.Context, date string) ([]string, error) {
	return nil, nil
}

func (f *fakeEngine) CandidateProviders(ctx context.Context, date, startTime string) ([]models.Provider, error) {
	return nil, nil
}

func (f *fakeEngine) DayOccupancy(ctx context.Context, date string) (*models.DayOccupancy, error) {
	return nil, nil
}

func (f *fakeEngine) InvalidateSlots(ctx context.Context, date string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, date)
}

// fakeServiceRepo is an in-memory ServiceRepository.
type fakeServiceRepo struct {
	services map[string]*models.Service
}

func (f *fakeServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, serviceRepo.ErrNotFound
}

func (f *fakeServiceRepo) ListActive(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	for _, s := range f.services {
		if s.Active {
			out = append(out, *s)
		}
	}
	return out, nil
}

// fakePurchaseRepo enforces the unique checkout session constraint.
type fakePurchaseRepo struct {
	mu        sync.Mutex
	purchases []models.Purchase
}

func (f *fakePurchaseRepo) Create(ctx context.Context, purchase *models.Purchase) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.purchases {
		if p.CheckoutSessionID == purchase.CheckoutSessionID {
			return purchaseRepo.ErrDuplicateCheckoutSession
		}
	}
	f.purchases = append(f.purchases, *purchase)
	return nil
}

func (f *fakePurchaseRepo) GetByCheckoutSessionID(ctx context.Context, sessionID string) (*models.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.purchases {
		if f.purchases[i].CheckoutSessionID == sessionID {
			p := f.purchases[i]
			return &p, nil
		}
	}
	return nil, purchaseRepo.ErrNotFound
}

func (f *fakePurchaseRepo) UpdateProvider(ctx context.Context, id, providerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.purchases {
		if f.purchases[i].ID == id {
			f.purchases[i].ProviderID = providerID
			return nil
		}
	}
	return purchaseRepo.ErrNotFound
}

func (f *fakePurchaseRepo) ListByUser(ctx context.Context, userID string) ([]models.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Purchase
	for _, p := range f.purchases {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePurchaseRepo) all() []models.Purchase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Purchase(nil), f.purchases...)
}

// fakeAppointmentRepo enforces the unique (provider_id, start_at) constraint.
type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments []models.Appointment
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, appointment *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appointments {
		if a.ProviderID == appointment.ProviderID && a.StartAt.Equal(appointment.StartAt) {
			return appointmentRepo.ErrSlotTaken
		}
	}
	f.appointments = append(f.appointments, *appointment)
	return nil
}

func (f *fakeAppointmentRepo) StartingAt(ctx context.Context, startAt time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.StartAt.Equal(startAt) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) InRange(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appointments {
		if !a.StartAt.Before(from) && a.StartAt.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) GetByPurchaseID(ctx context.Context, purchaseID string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.appointments {
		if f.appointments[i].PurchaseID == purchaseID {
			a := f.appointments[i]
			return &a, nil
		}
	}
	return nil, appointmentRepo.ErrNotFound
}

func (f *fakeAppointmentRepo) all() []models.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Appointment(nil), f.appointments...)
}

// fakeProviderRepo resolves provider records.
type fakeProviderRepo struct {
	providers map[string]*models.Provider
}

func (f *fakeProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	if p, ok := f.providers[id]; ok {
		return p, nil
	}
	return nil, providerRepo.ErrNotFound
}

func (f *fakeProviderRepo) ListActive(ctx context.Context) ([]models.Provider, error) {
	var out []models.Provider
	for _, p := range f.providers {
		if p.Active {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProviderRepo) CountActive(ctx context.Context) (int, error) {
	out, _ := f.ListActive(ctx)
	return len(out), nil
}

func (f *fakeProviderRepo) Create(ctx context.Context, provider *models.Provider) error {
	f.providers[provider.ID] = provider
	return nil
}

func (f *fakeProviderRepo) SetActive(ctx context.Context, id string, active bool) error {
	if p, ok := f.providers[id]; ok {
		p.Active = active
		return nil
	}
	return providerRepo.ErrNotFound
}

// fakeAvailabilityRepo is an in-memory AvailabilityRepository, enough to
// drive the real slot planner from these tests.
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

// fakeDispatcher records enqueued notifications and can simulate failures.
type fakeDispatcher struct {
	mu        sync.Mutex
	welcomes  []models.WelcomePayload
	summaries []models.BookingSummaryPayload
	reminders []models.ReminderPayload
	fireAts   []time.Time
	failAll   error
}

func (f *fakeDispatcher) DispatchWelcome(ctx context.Context, p models.WelcomePayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	f.welcomes = append(f.welcomes, p)
	return nil
}

func (f *fakeDispatcher) DispatchBookingSummary(ctx context.Context, p models.BookingSummaryPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	f.summaries = append(f.summaries, p)
	return nil
}

func (f *fakeDispatcher) DispatchReminder(ctx context.Context, p models.ReminderPayload, fireAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	f.reminders = append(f.reminders, p)
	f.fireAts = append(f.fireAts, fireAt)
	return nil
}
