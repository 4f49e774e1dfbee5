package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct the route
// registration consumes.
type HandlerBundle struct {
	// Booking wizard endpoints
	StartSession   gin.HandlerFunc
	GetDraft       gin.HandlerFunc
	SetService     gin.HandlerFunc
	SetDetails     gin.HandlerFunc
	SetSchedule    gin.HandlerFunc
	SetCleaner     gin.HandlerFunc
	SetContact     gin.HandlerFunc
	ResetSession   gin.HandlerFunc
	AvailableSlots gin.HandlerFunc
	Submit         gin.HandlerFunc
	Confirmation   gin.HandlerFunc

	// Promo endpoints
	ClaimPromo       gin.HandlerFunc
	ActivePromoClaim gin.HandlerFunc

	// Catalog endpoints
	ListServices gin.HandlerFunc
	GetService   gin.HandlerFunc
	ListExtras   gin.HandlerFunc
	ListCleaners gin.HandlerFunc

	// Admin endpoints
	AdminGetBooking          gin.HandlerFunc
	AdminUpdateBookingStatus gin.HandlerFunc
	AdminRevokeClaim         gin.HandlerFunc
	AdminExpireLapsed        gin.HandlerFunc
}
