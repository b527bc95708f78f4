package booking

import (
	"context"
	"testing"

	serviceRepo "comoencasa/database/repository/service"
	"comoencasa/models"
	"comoencasa/services/scheduling"

	"github.com/stretchr/testify/assert"
)

func newCheckoutFixture(matcher *fakeMatcher) *DefaultCheckoutService {
	return NewCheckoutService(&fakeServiceRepo{services: map[string]*models.Service{
		"svc1":     {ID: "svc1", Name: "Sesión individual", PriceCents: 6000, Currency: "eur", Active: true},
		"inactive": {ID: "inactive", Name: "Retirado", PriceCents: 6000, Currency: "eur", Active: false},
	}}, matcher)
}

func validCheckoutInput() CheckoutInput {
	return CheckoutInput{
		ServiceID: "svc1",
		Date:      "2025-03-17",
		Time:      "10:00",
		FullName:  "María García",
		Email:     "maria@example.test",
	}
}

func TestCreateCheckoutRejectsUnknownService(t *testing.T) {
	svc := newCheckoutFixture(&fakeMatcher{resolveFunc: func(*string) (string, error) { return "t1", nil }})
	input := validCheckoutInput()
	input.ServiceID = "missing"

	_, err := svc.CreateCheckout(context.Background(), input)
	assert.ErrorIs(t, err, serviceRepo.ErrNotFound)
}

func TestCreateCheckoutRejectsInactiveService(t *testing.T) {
	svc := newCheckoutFixture(&fakeMatcher{resolveFunc: func(*string) (string, error) { return "t1", nil }})
	input := validCheckoutInput()
	input.ServiceID = "inactive"

	_, err := svc.CreateCheckout(context.Background(), input)
	assert.ErrorContains(t, err, "not purchasable")
}

func TestCreateCheckoutRejectsMalformedSlot(t *testing.T) {
	svc := newCheckoutFixture(&fakeMatcher{resolveFunc: func(*string) (string, error) { return "t1", nil }})
	input := validCheckoutInput()
	input.Time = "10:60"

	_, err := svc.CreateCheckout(context.Background(), input)
	assert.ErrorContains(t, err, "invalid booking slot")
}

func TestCreateCheckoutRejectsUnbookableSlot(t *testing.T) {
	matcher := &fakeMatcher{resolveFunc: func(*string) (string, error) {
		return "", scheduling.ErrNoProviderAvailable
	}}
	svc := newCheckoutFixture(matcher)

	_, err := svc.CreateCheckout(context.Background(), validCheckoutInput())
	assert.ErrorIs(t, err, scheduling.ErrNoProviderAvailable)
	assert.Equal(t, 1, matcher.calls)
}

func TestCreateCheckoutValidatesExplicitProviderChoice(t *testing.T) {
	var seen *string
	matcher := &fakeMatcher{resolveFunc: func(providerID *string) (string, error) {
		seen = providerID
		return "", scheduling.ErrNoProviderAvailable
	}}
	svc := newCheckoutFixture(matcher)

	input := validCheckoutInput()
	chosen := "t2"
	input.ProviderID = &chosen

	_, err := svc.CreateCheckout(context.Background(), input)
	assert.ErrorIs(t, err, scheduling.ErrNoProviderAvailable)
	if assert.NotNil(t, seen) {
		assert.Equal(t, "t2", *seen)
	}
}
