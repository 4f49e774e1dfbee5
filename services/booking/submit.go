package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sparklean/models"
	"sparklean/services/promo"
	"sparklean/utils"
)

// Submit turns the session's draft into a durable booking. The order is
// deliberate: the draft is re-validated against the catalog, the quote is
// recomputed server-side, the promo claim is redeemed before the booking
// write so a lost redemption aborts cleanly, and the draft is only reset
// once the booking is durably created.
func (s *DefaultBookingFlowService) Submit(ctx context.Context, sessionID string) (*SubmitResult, error) {
	draft, err := s.Drafts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := requireStep(draft, StepReview); err != nil {
		return nil, err
	}

	// Strict catalog re-validation. A vanished service or extra blocks the
	// submission outright; drafts never get silently repriced to zero here.
	svc, err := s.Catalog.GetService(ctx, draft.ServiceID)
	if err != nil {
		return nil, err
	}
	extras := make(map[string]models.Extra, len(draft.ExtraIDs))
	for _, id := range draft.ExtraIDs {
		extra, err := s.Catalog.GetExtra(ctx, id)
		if err != nil {
			return nil, err
		}
		if !extra.AvailableForService(svc.ID) {
			return nil, NewValidationError("extraIds", fmt.Sprintf("extra %q is not available for this service", id))
		}
		extras[id] = *extra
	}

	claim, err := s.Promo.ActiveClaim(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load promo claim: %w", err)
	}
	if claim == nil && draft.Pricing != nil && draft.Pricing.PromoCode != "" {
		// The review page showed a discount the session no longer holds. Stop
		// and make the user re-accept the undiscounted price.
		return nil, promo.NewPromoNoLongerValid(draft.Pricing.PromoCode)
	}

	quote := ComputeQuote(svc, extras, draft, claim)

	reference, err := utils.GenerateBookingReference()
	if err != nil {
		return nil, err
	}
	paymentRef, err := utils.GeneratePaymentReference()
	if err != nil {
		return nil, err
	}

	now := s.now()
	booking := &models.Booking{
		ID:                  uuid.New().String(),
		Reference:           reference,
		PaymentReference:    paymentRef,
		ServiceID:           draft.ServiceID,
		ServiceName:         draft.ServiceName,
		CleanerID:           draft.CleanerID,
		Date:                draft.Date,
		Time:                draft.Time,
		Frequency:           draft.Frequency,
		Location:            draft.Location,
		Bedrooms:            draft.Bedrooms,
		Bathrooms:           draft.Bathrooms,
		ExtraIDs:            draft.ExtraIDs,
		SpecialInstructions: draft.SpecialInstructions,
		Email:               draft.Email,
		Pricing:             *quote,
		Status:              models.BookingPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	// Redeem before creating: if we lose the conditional write the booking is
	// never created and the user re-confirms without the discount. Only spend
	// the claim when the quote actually applied it; an out-of-scope claim
	// (user switched services after claiming) stays usable.
	claimApplied := claim != nil && quote.PromoCode == claim.Code
	if claimApplied {
		if _, err := s.Promo.Redeem(ctx, claim.ID, booking.ID); err != nil {
			return nil, err
		}
	}

	if err := s.Repo.Create(ctx, booking); err != nil {
		if claimApplied {
			if relErr := s.Promo.Release(ctx, claim.ID, booking.ID); relErr != nil {
				zap.L().Error("failed to release redeemed claim after booking create failure",
					zap.String("claimId", claim.ID),
					zap.String("bookingId", booking.ID),
					zap.Error(relErr))
			}
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	// The draft has served its purpose. A failed reset is not fatal: the
	// confirmation page tolerates a surviving draft and the TTL cleans up.
	if err := s.Drafts.Reset(ctx, sessionID); err != nil {
		zap.L().Warn("failed to reset draft after submission",
			zap.String("sessionId", sessionID), zap.Error(err))
	}

	result := &SubmitResult{Booking: booking}
	if s.Payments != nil {
		url, err := s.Payments.CreateCheckout(ctx, booking)
		if err != nil {
			// The booking exists; the frontend offers a retry-payment path.
			zap.L().Error("failed to create checkout session",
				zap.String("bookingId", booking.ID), zap.Error(err))
		} else {
			result.CheckoutURL = url
		}
	}

	if booking.Email != "" {
		s.sendConfirmation(booking)
	}

	zap.L().Info("booking submitted",
		zap.String("sessionId", sessionID),
		zap.String("bookingId", booking.ID),
		zap.String("reference", booking.Reference),
		zap.Float64("total", booking.Pricing.Total))

	return result, nil
}

// sendConfirmation hands the confirmation email off without blocking the
// submission. The queue is preferred; a direct send is the fallback when no
// worker is wired (tests, single-process deployments).
func (s *DefaultBookingFlowService) sendConfirmation(b *models.Booking) {
	if s.Enqueue != nil {
		err := s.Enqueue(b)
		if err == nil {
			return
		}
		zap.L().Warn("failed to enqueue confirmation email, sending directly",
			zap.String("bookingId", b.ID), zap.Error(err))
	}
	if s.Notifier == nil {
		return
	}
	go func(b *models.Booking) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.Notifier.SendBookingConfirmation(ctx, b.Email, b); err != nil {
			zap.L().Warn("failed to send confirmation email",
				zap.String("bookingId", b.ID), zap.Error(err))
		}
	}(b)
}
