package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Public booking endpoints.
	GetOpenSlots          gin.HandlerFunc
	GetCandidateProviders gin.HandlerFunc
	GetDayOccupancy       gin.HandlerFunc
	GetServices           gin.HandlerFunc
	CreateCheckout        gin.HandlerFunc

	// Payment webhook.
	StripeWebhook gin.HandlerFunc

	// Admin endpoints.
	AdminLogin        gin.HandlerFunc
	CreateTherapist   gin.HandlerFunc
	ListTherapists    gin.HandlerFunc
	SetTherapistState gin.HandlerFunc
	GetSchedule       gin.HandlerFunc
	ReplaceSchedule   gin.HandlerFunc
}
