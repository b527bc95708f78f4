package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"comoencasa/config"
	"comoencasa/models"
	"comoencasa/services/booking"
	"comoencasa/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// maxWebhookBodyBytes caps the webhook payload read, per Stripe's guidance.
const maxWebhookBodyBytes = int64(65536)

// WebhookHandler receives payment events from Stripe and feeds confirmed
// checkouts into the provisioning workflow.
type WebhookHandler struct {
	Provisioning booking.ProvisioningService
}

// NewWebhookHandler constructs the webhook handler.
func NewWebhookHandler(provisioning booking.ProvisioningService) *WebhookHandler {
	return &WebhookHandler{Provisioning: provisioning}
}

// HandleStripeEvent verifies the event signature and dispatches
// checkout.session.completed to provisioning. Any provisioning failure
// returns a non-2xx status so Stripe redelivers the event.
// POST /api/webhooks/stripe
func (h *WebhookHandler) HandleStripeEvent(c *gin.Context) {
	logger := utils.GetLogger().With(zap.String("handler", "stripe-webhook"))

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to read request body", err.Error())
		return
	}

	event, err := webhook.ConstructEvent(body, c.GetHeader("Stripe-Signature"), config.AppConfig.StripeWebhookSecret)
	if err != nil {
		logger.Warn("webhook signature verification failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "invalid webhook signature", err.Error())
		return
	}

	if event.Type != "checkout.session.completed" {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		logger.Error("failed to decode checkout session payload", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "invalid event payload", err.Error())
		return
	}

	req, err := models.AppointmentRequestFromMetadata(session.ID, session.Metadata)
	if err != nil {
		// Malformed metadata never heals on redelivery; acknowledge and alert.
		logger.Error("rejecting checkout session with invalid metadata",
			zap.String("checkoutSession", session.ID), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"received": true, "skipped": true})
		return
	}

	// Any workflow failure requests redelivery. The workflow resumes from its
	// recorded purchase, so retrying is always safe and a provider conflict
	// can resolve on a later attempt once the slot frees up or matching picks
	// a different provider.
	if err := h.Provisioning.HandlePaymentConfirmed(c.Request.Context(), req); err != nil {
		logger.Error("provisioning failed, requesting redelivery",
			zap.String("checkoutSession", session.ID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "provisioning failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
