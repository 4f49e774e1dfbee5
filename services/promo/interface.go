package promo

import (
	"context"

	"sparklean/models"
)

// PromoService manages the claim/redeem lifecycle of discount codes. Claiming
// and redeeming are the two phases; a claim that is never redeemed simply
// expires.
type PromoService interface {
	// Claim validates the code for this session and service scope and issues a
	// provisional claim with a fixed TTL.
	Claim(ctx context.Context, code, sessionID, serviceSlug, email string) (*models.PromoClaim, error)
	// ActiveClaim returns the session's current claim with expiry evaluated
	// lazily, or nil when the session holds no usable claim.
	ActiveClaim(ctx context.Context, sessionID string) (*models.PromoClaim, error)
	// Redeem spends the claim for the given booking. It must be called before
	// the booking is durably created; losing the conditional write aborts the
	// whole submission with a PromoNoLongerValid error.
	Redeem(ctx context.Context, claimID, bookingID string) (*models.PromoRedemption, error)
	// Release undoes a redemption whose booking write failed. Best effort.
	Release(ctx context.Context, claimID, bookingID string) error
	// Revoke is the administrative kill switch for a claim.
	Revoke(ctx context.Context, claimID, reason string) error
	// ExpireLapsed flips stored-active claims past their window; run from the
	// background worker.
	ExpireLapsed(ctx context.Context) (int64, error)
}
