package routes

import (
	"net/http"
	"time"

	"comoencasa/handlers"
	"comoencasa/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the public booking calendar and checkout
// endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/booking")
	{
		api.GET("/slots", hb.GetOpenSlots)
		api.GET("/slots/:date/providers", hb.GetCandidateProviders)
		api.GET("/occupancy", hb.GetDayOccupancy)
		api.GET("/services", hb.GetServices)
		api.POST("/checkout", hb.CreateCheckout)
	}
}

// RegisterWebhookRoutes sets up the payment processor callback. No auth
// middleware here: the Stripe signature check inside the handler is the
// authentication.
func RegisterWebhookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/webhooks/stripe", hb.StripeWebhook)
}

// RegisterAdminRoutes sets up endpoints for the dashboard.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.POST("/login", hb.AdminLogin)

		// Protected routes (Require Authentication)
		adminGroup.Use(middleware.JWTAuthAdminMiddleware())
		adminGroup.POST("/therapists", hb.CreateTherapist)
		adminGroup.GET("/therapists", hb.ListTherapists)
		adminGroup.PATCH("/therapists/:id/state", hb.SetTherapistState)
		adminGroup.GET("/therapists/:id/schedule", hb.GetSchedule)
		adminGroup.PUT("/therapists/:id/schedule", hb.ReplaceSchedule)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterWebhookRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
