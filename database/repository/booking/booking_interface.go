package bookingRepo

import (
	"context"

	"sparklean/models"
)

// BookingRepository defines methods for durable booking access.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// GetByReference retrieves a booking by its human-readable reference.
	GetByReference(ctx context.Context, reference string) (*models.Booking, error)
	// GetByPaymentReference retrieves a booking by the reference handed to the
	// payment provider. Returns ErrBookingNotFound when no record is visible.
	GetByPaymentReference(ctx context.Context, paymentReference string) (*models.Booking, error)
	// UpdateStatus advances a booking's lifecycle status.
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error
	// Delete removes a booking record; used only to compensate a failed submission.
	Delete(ctx context.Context, id string) error
}
