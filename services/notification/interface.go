package notification

import (
	"context"

	"sparklean/models"
)

// NotificationService defines methods for sending customer emails. Sends are
// best effort: the booking flow never blocks on them and failures are only
// logged.
type NotificationService interface {
	SendBookingConfirmation(ctx context.Context, to string, booking *models.Booking) error
}
