package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	bookingRepo "sparklean/database/repository/booking"
	"sparklean/models"
)

// Resolve produces the confirmation view for a payment reference. The durable
// booking is the source of truth; a short bounded retry absorbs read-after-
// write lag. When the booking still is not readable but the session's draft
// survived, a provisional view is reconstructed from it and flagged, and the
// draft is left alone so a later retry can still resolve durably.
func (s *DefaultBookingFlowService) Resolve(ctx context.Context, sessionID, paymentReference string) (*models.BookingView, error) {
	attempts := s.ResolveAttempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	backoff := s.ResolveBackoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		b, err := s.Repo.GetByPaymentReference(ctx, paymentReference)
		if err == nil {
			// Idempotent cleanup: usually a no-op because Submit already
			// reset the draft.
			if rerr := s.Drafts.Reset(ctx, sessionID); rerr != nil {
				zap.L().Warn("failed to reset draft on confirmation",
					zap.String("sessionId", sessionID), zap.Error(rerr))
			}
			return models.ViewFromBooking(b), nil
		}
		if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			lastErr = err
			zap.L().Warn("booking lookup failed, retrying",
				zap.String("paymentReference", paymentReference),
				zap.Int("attempt", i+1), zap.Error(err))
		}
	}

	draft, err := s.Drafts.Load(ctx, sessionID)
	if err == nil && !draft.IsEmpty() {
		zap.L().Info("serving provisional confirmation from draft",
			zap.String("sessionId", sessionID),
			zap.String("paymentReference", paymentReference))
		return models.ViewFromDraft(draft, paymentReference), nil
	}

	if lastErr != nil {
		zap.L().Error("confirmation unresolvable after transient lookup failures",
			zap.String("paymentReference", paymentReference), zap.Error(lastErr))
	}
	return nil, NewBookingNotFound(paymentReference)
}
