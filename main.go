package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"

	"sparklean/config"
	"sparklean/cron"
	"sparklean/database"
	bookingRepoPkg "sparklean/database/repository/booking"
	catalogRepoPkg "sparklean/database/repository/catalog"
	promoRepoPkg "sparklean/database/repository/promo"
	"sparklean/handlers"
	"sparklean/middleware"
	"sparklean/routes"
	"sparklean/services/booking"
	"sparklean/services/catalog"
	"sparklean/services/notification"
	"sparklean/services/promo"
	"sparklean/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitDraftCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	promoRepo := promoRepoPkg.NewMongoPromoRepo()
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo()

	// services.
	catalogService := &catalog.DefaultCatalogService{
		Repo:  catalogRepo,
		Cache: utils.GetCacheClient(),
	}

	promoService := &promo.DefaultPromoService{
		Repo:     promoRepo,
		ClaimTTL: time.Duration(config.AppConfig.PromoClaimTTLHours) * time.Hour,
	}

	notificationService := notification.NewEmailNotificationService(
		config.AppConfig.MailAPIKey,
		config.AppConfig.MailAPIURL,
		config.AppConfig.MailFrom,
	)

	draftStore := &booking.DraftStore{
		Cache: &booking.RedisDraftCache{Client: utils.GetDraftCacheClient()},
		TTL:   time.Duration(config.AppConfig.DraftTTLMinutes) * time.Minute,
	}

	flowService := &booking.DefaultBookingFlowService{
		Drafts:  draftStore,
		Catalog: catalogService,
		Promo:   promoService,
		Repo:    bookingRepo,
		Payments: &booking.StripeCheckoutProvider{
			Currency:  config.AppConfig.Currency,
			ReturnURL: config.AppConfig.CheckoutReturn,
		},
		Notifier: notificationService,
		Enqueue:  cron.NewEmailEnqueuer(),
	}

	bookingHandler := &handlers.BookingHandler{Service: flowService}
	promoHandler := &handlers.PromoHandler{Service: promoService}
	catalogHandler := &handlers.CatalogHandler{Service: catalogService}
	adminHandler := &handlers.AdminHandler{Bookings: bookingRepo}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Booking wizard endpoints.
		StartSession:   bookingHandler.StartSessionHandler,
		GetDraft:       bookingHandler.GetDraftHandler,
		SetService:     bookingHandler.SetServiceHandler,
		SetDetails:     bookingHandler.SetDetailsHandler,
		SetSchedule:    bookingHandler.SetScheduleHandler,
		SetCleaner:     bookingHandler.SetCleanerHandler,
		SetContact:     bookingHandler.SetContactHandler,
		ResetSession:   bookingHandler.ResetSessionHandler,
		AvailableSlots: bookingHandler.AvailableSlotsHandler,
		Submit:         bookingHandler.SubmitHandler,
		Confirmation:   bookingHandler.ConfirmationHandler,

		// Promo endpoints.
		ClaimPromo:       promoHandler.ClaimHandler,
		ActivePromoClaim: promoHandler.ActiveClaimHandler,

		// Catalog endpoints.
		ListServices: catalogHandler.ListServicesHandler,
		GetService:   catalogHandler.GetServiceHandler,
		ListExtras:   catalogHandler.ListExtrasHandler,
		ListCleaners: catalogHandler.ListCleanersHandler,

		// Admin endpoints.
		AdminGetBooking:          adminHandler.GetBookingHandler,
		AdminUpdateBookingStatus: adminHandler.UpdateBookingStatusHandler,
		AdminRevokeClaim:         promoHandler.RevokeClaimHandler,
		AdminExpireLapsed:        promoHandler.ExpireLapsedHandler,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background worker: confirmation emails and the expired-claim sweep.
	cron.InitWorker(notificationService, promoService)

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
