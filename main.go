package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"comoencasa/config"
	"comoencasa/cron"
	"comoencasa/database"
	availabilityRepo "comoencasa/database/repository/availability"
	appointmentRepo "comoencasa/database/repository/appointment"
	providerRepo "comoencasa/database/repository/provider"
	purchaseRepo "comoencasa/database/repository/purchase"
	serviceRepo "comoencasa/database/repository/service"
	userRepoPkg "comoencasa/database/repository/user"
	"comoencasa/handlers"
	"comoencasa/middleware"
	"comoencasa/routes"
	"comoencasa/services/booking"
	"comoencasa/services/identity"
	"comoencasa/services/notification"
	"comoencasa/services/scheduling"
	"comoencasa/services/tasks"
	"comoencasa/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	provRepo := providerRepo.NewMongoProviderRepo()
	availRepo := availabilityRepo.NewMongoAvailabilityRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	svcRepo := serviceRepo.NewMongoServiceRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	purchRepo := purchaseRepo.NewMongoPurchaseRepo()

	// services.
	schedulingEngine := &scheduling.DefaultSchedulingEngine{
		ProviderRepo:     provRepo,
		AvailabilityRepo: availRepo,
		AppointmentRepo:  apptRepo,
		Cache:            utils.GetCacheClient(),
		Now:              time.Now,
	}
	matchingService := &scheduling.DefaultMatchingService{
		Engine: schedulingEngine,
	}

	identityService := &identity.DefaultIdentityService{
		Repo: userRepo,
	}

	notificationService := notification.NewDefaultNotificationService()

	asynqClient := asynq.NewClient(utils.QueueRedisOpt())
	defer asynqClient.Close()
	dispatcher := tasks.NewAsynqDispatcher(asynqClient)
	cron.InitEmailWorker(notificationService)

	checkoutService := booking.NewCheckoutService(svcRepo, matchingService)
	provisioningService := &booking.DefaultProvisioningService{
		Identity:        identityService,
		Matcher:         matchingService,
		Engine:          schedulingEngine,
		ServiceRepo:     svcRepo,
		PurchaseRepo:    purchRepo,
		AppointmentRepo: apptRepo,
		ProviderRepo:    provRepo,
		Dispatcher:      dispatcher,
	}

	bookingHandler := handlers.NewBookingHandler(schedulingEngine, checkoutService, svcRepo)
	webhookHandler := handlers.NewWebhookHandler(provisioningService)
	adminHandler := handlers.NewAdminHandler(userRepo, provRepo, availRepo)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Booking endpoints.
		GetOpenSlots:          bookingHandler.GetOpenSlots,
		GetCandidateProviders: bookingHandler.GetCandidateProviders,
		GetDayOccupancy:       bookingHandler.GetDayOccupancy,
		GetServices:           bookingHandler.GetServices,
		CreateCheckout:        bookingHandler.CreateCheckout,

		// Payment webhook.
		StripeWebhook: webhookHandler.HandleStripeEvent,

		// Admin endpoints.
		AdminLogin:        adminHandler.Login,
		CreateTherapist:   adminHandler.CreateTherapist,
		ListTherapists:    adminHandler.ListTherapists,
		SetTherapistState: adminHandler.SetTherapistState,
		GetSchedule:       adminHandler.GetSchedule,
		ReplaceSchedule:   adminHandler.ReplaceSchedule,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
