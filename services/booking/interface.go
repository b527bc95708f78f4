package booking

import (
	"context"

	"comoencasa/models"
)

// CheckoutInput is the booking intent posted by the reservation flow before
// the client is sent to the payment processor.
type CheckoutInput struct {
	ServiceID  string  `json:"service_id" binding:"required"`
	Date       string  `json:"date" binding:"required"`
	Time       string  `json:"time" binding:"required"`
	ProviderID *string `json:"provider_id,omitempty"`
	ClientID   *string `json:"client_id,omitempty"`
	FullName   string  `json:"full_name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Phone      string  `json:"phone,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

// CheckoutService turns a booking intent into a hosted payment page.
type CheckoutService interface {
	// CreateCheckout validates the slot selection and opens a checkout
	// session with the booking intent embedded as metadata. Returns the URL
	// the client is redirected to.
	CreateCheckout(ctx context.Context, input CheckoutInput) (string, error)
}

// ProvisioningService converts a confirmed payment into durable records.
type ProvisioningService interface {
	// HandlePaymentConfirmed runs the provisioning workflow for one payment
	// confirmation event. A nil return acknowledges the event; any error
	// tells the caller to signal the processor for redelivery. Safe to call
	// repeatedly with the same checkout session ID.
	HandlePaymentConfirmed(ctx context.Context, req models.AppointmentRequest) error
}
