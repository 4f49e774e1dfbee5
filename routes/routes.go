package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"sparklean/handlers"
	"sparklean/middleware"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Sparklean"})
	})
}

// RegisterBookingRoutes sets up the wizard endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.POST("/session", hb.StartSession)
		bookingGroup.GET("/session/:sessionID", hb.GetDraft)
		bookingGroup.PUT("/session/:sessionID/service", hb.SetService)
		bookingGroup.PUT("/session/:sessionID/details", hb.SetDetails)
		bookingGroup.PUT("/session/:sessionID/schedule", hb.SetSchedule)
		bookingGroup.PUT("/session/:sessionID/cleaner", hb.SetCleaner)
		bookingGroup.PUT("/session/:sessionID/contact", hb.SetContact)
		bookingGroup.DELETE("/session/:sessionID", hb.ResetSession)
		bookingGroup.POST("/session/:sessionID/submit", hb.Submit)
		bookingGroup.GET("/slots", hb.AvailableSlots)
		bookingGroup.GET("/confirmation", hb.Confirmation)
	}
}

// RegisterPromoRoutes sets up the promo claim endpoints.
func RegisterPromoRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	promoGroup := r.Group("/api/promo")
	{
		promoGroup.POST("/claim", hb.ClaimPromo)
		promoGroup.GET("/claim/:sessionID", hb.ActivePromoClaim)
	}
}

// RegisterCatalogRoutes sets up the public catalog endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	catalogGroup := r.Group("/api/catalog")
	{
		catalogGroup.GET("/services", hb.ListServices)
		catalogGroup.GET("/services/:slug", hb.GetService)
		catalogGroup.GET("/extras", hb.ListExtras)
		catalogGroup.GET("/cleaners", hb.ListCleaners)
	}
}

// RegisterAdminRoutes sets up endpoints for staff operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthAdminMiddleware())
		adminGroup.GET("/bookings/:reference", hb.AdminGetBooking)
		adminGroup.PATCH("/bookings/:reference/status", hb.AdminUpdateBookingStatus)
		adminGroup.DELETE("/promo/claims/:claimID", hb.AdminRevokeClaim)
		adminGroup.POST("/promo/expire-lapsed", hb.AdminExpireLapsed)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterPromoRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
