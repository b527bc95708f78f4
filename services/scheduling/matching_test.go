package scheduling

import (
	"context"
	"testing"

	"comoencasa/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatcher(appointments *fakeAppointmentRepo) *DefaultMatchingService {
	engine := newTestEngine(
		&fakeProviderRepo{providers: []models.Provider{
			{ID: "t1", Active: true},
			{ID: "t2", Active: true},
		}},
		&fakeAvailabilityRepo{windows: []models.AvailabilityWindow{
			mondayWindow("t1", "09:00", "14:00"),
			mondayWindow("t2", "09:00", "14:00"),
		}},
		appointments,
	)
	return &DefaultMatchingService{Engine: engine}
}

func TestResolveExplicitProviderStillAvailable(t *testing.T) {
	matcher := newTestMatcher(&fakeAppointmentRepo{})

	chosen := "t2"
	assigned, err := matcher.Resolve(context.Background(), testDate, "10:00", &chosen)
	require.NoError(t, err)
	assert.Equal(t, "t2", assigned)
}

func TestResolveExplicitProviderBusyFails(t *testing.T) {
	matcher := newTestMatcher(&fakeAppointmentRepo{
		appointments: []models.Appointment{bookedAt("t2", testDate, "10:00")},
	})

	chosen := "t2"
	_, err := matcher.Resolve(context.Background(), testDate, "10:00", &chosen)
	assert.ErrorIs(t, err, ErrNoProviderAvailable)
}

func TestResolveExplicitUnknownProviderFails(t *testing.T) {
	matcher := newTestMatcher(&fakeAppointmentRepo{})

	chosen := "nope"
	_, err := matcher.Resolve(context.Background(), testDate, "10:00", &chosen)
	assert.ErrorIs(t, err, ErrNoProviderAvailable)
}

func TestResolveAutoAssignsLowestID(t *testing.T) {
	matcher := newTestMatcher(&fakeAppointmentRepo{})

	assigned, err := matcher.Resolve(context.Background(), testDate, "10:00", nil)
	require.NoError(t, err)
	assert.Equal(t, "t1", assigned)
}

func TestResolveAutoSkipsBusyProvider(t *testing.T) {
	matcher := newTestMatcher(&fakeAppointmentRepo{
		appointments: []models.Appointment{bookedAt("t1", testDate, "10:00")},
	})

	assigned, err := matcher.Resolve(context.Background(), testDate, "10:00", nil)
	require.NoError(t, err)
	assert.Equal(t, "t2", assigned)
}

func TestResolveNoCandidatesFails(t *testing.T) {
	matcher := newTestMatcher(&fakeAppointmentRepo{
		appointments: []models.Appointment{
			bookedAt("t1", testDate, "10:00"),
			bookedAt("t2", testDate, "10:00"),
		},
	})

	_, err := matcher.Resolve(context.Background(), testDate, "10:00", nil)
	assert.ErrorIs(t, err, ErrNoProviderAvailable)
}
