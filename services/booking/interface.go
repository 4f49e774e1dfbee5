package booking

import (
	"context"
	"time"

	bookingRepo "sparklean/database/repository/booking"
	"sparklean/models"
	"sparklean/services/catalog"
	"sparklean/services/notification"
	"sparklean/services/promo"
)

// BookingFlowService drives the wizard: it owns the draft session, recomputes
// the quote on every price-affecting mutation, submits the draft into a
// durable booking, and resolves the confirmation view.
type BookingFlowService interface {
	StartSession(ctx context.Context) (*models.BookingDraft, error)
	GetDraft(ctx context.Context, sessionID string) (*models.BookingDraft, error)
	SetService(ctx context.Context, sessionID, serviceID string) (*models.BookingDraft, error)
	SetDetails(ctx context.Context, sessionID string, bedrooms, bathrooms int, extraIDs []string) (*models.BookingDraft, error)
	SetSchedule(ctx context.Context, sessionID, date, timeOfDay string, frequency models.Frequency, location string) (*models.BookingDraft, error)
	SetCleaner(ctx context.Context, sessionID, cleanerID string) (*models.BookingDraft, error)
	SetContact(ctx context.Context, sessionID, email, specialInstructions string) (*models.BookingDraft, error)
	Reset(ctx context.Context, sessionID string) error
	AvailableSlots(date string) ([]string, error)
	Submit(ctx context.Context, sessionID string) (*SubmitResult, error)
	Resolve(ctx context.Context, sessionID, paymentReference string) (*models.BookingView, error)
}

// SubmitResult is what a successful submission hands back to the frontend.
type SubmitResult struct {
	Booking     *models.Booking `json:"booking"`
	CheckoutURL string          `json:"checkoutUrl,omitempty"`
}

// EnqueueEmail hands a confirmation email to the background worker; it must
// never block or fail the booking flow.
type EnqueueEmail func(booking *models.Booking) error

// DefaultBookingFlowService implements BookingFlowService.
type DefaultBookingFlowService struct {
	Drafts   *DraftStore
	Catalog  catalog.CatalogService
	Promo    promo.PromoService
	Repo     bookingRepo.BookingRepository
	Payments PaymentProvider
	Notifier notification.NotificationService
	Enqueue  EnqueueEmail

	// ResolveAttempts and ResolveBackoff bound the read-after-write retry on
	// the confirmation page before falling back to a provisional view.
	ResolveAttempts int
	ResolveBackoff  time.Duration

	// Now is the clock; tests override it.
	Now func() time.Time
}

func (s *DefaultBookingFlowService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

const (
	maxRooms            = 10
	defaultAttempts     = 3
	defaultBackoff      = 150 * time.Millisecond
	maxLocationLength   = 500
	maxInstructionChars = 2000
)
