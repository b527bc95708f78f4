package booking

import (
	"context"
	"fmt"

	"comoencasa/config"
	serviceRepo "comoencasa/database/repository/service"
	"comoencasa/models"
	"comoencasa/services/scheduling"
	"comoencasa/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// DefaultCheckoutService opens Stripe checkout sessions for validated booking
// intents. The intent travels through Stripe as session metadata and comes
// back on the payment webhook.
type DefaultCheckoutService struct {
	ServiceRepo serviceRepo.ServiceRepository
	Matcher     scheduling.MatchingService
}

// NewCheckoutService constructs the checkout service.
func NewCheckoutService(services serviceRepo.ServiceRepository, matcher scheduling.MatchingService) *DefaultCheckoutService {
	return &DefaultCheckoutService{ServiceRepo: services, Matcher: matcher}
}

// CreateCheckout validates the requested slot before money changes hands and
// returns the hosted payment page URL. An explicit provider choice is checked
// against the candidate set here; auto-assignment is only verified to be
// satisfiable, the final pick happens after payment.
func (s *DefaultCheckoutService) CreateCheckout(ctx context.Context, input CheckoutInput) (string, error) {
	logger := utils.GetLogger().With(zap.String("service", "checkout"))

	svc, err := s.ServiceRepo.GetByID(ctx, input.ServiceID)
	if err != nil {
		return "", fmt.Errorf("failed to load service %s: %w", input.ServiceID, err)
	}
	if !svc.Active {
		return "", fmt.Errorf("service %s is not purchasable", input.ServiceID)
	}

	req := models.AppointmentRequest{
		ServiceID:  input.ServiceID,
		ClientID:   input.ClientID,
		ProviderID: input.ProviderID,
		Date:       input.Date,
		Time:       input.Time,
		FullName:   input.FullName,
		Email:      input.Email,
		Phone:      input.Phone,
		Notes:      input.Notes,
	}
	if _, err := req.StartAt(); err != nil {
		return "", fmt.Errorf("invalid booking slot %s %s: %w", input.Date, input.Time, err)
	}

	// Reject unbookable slots before Stripe, not after payment.
	if _, err := s.Matcher.Resolve(ctx, input.Date, input.Time, input.ProviderID); err != nil {
		return "", err
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail:      stripe.String(input.Email),
		SuccessURL:         stripe.String(config.AppConfig.FrontendURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(config.AppConfig.FrontendURL + "/reservar"),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(svc.Currency),
					UnitAmount: stripe.Int64(svc.PriceCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(svc.Name),
						Description: stripe.String(svc.Description),
					},
				},
			},
		},
	}
	for key, value := range req.ToMetadata() {
		params.AddMetadata(key, value)
	}

	sess, err := session.New(params)
	if err != nil {
		logger.Error("stripe session creation failed", zap.Error(err))
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	logger.Info("checkout session created",
		zap.String("checkoutSession", sess.ID),
		zap.String("serviceID", svc.ID),
		zap.String("date", input.Date),
		zap.String("time", input.Time))
	return sess.URL, nil
}
