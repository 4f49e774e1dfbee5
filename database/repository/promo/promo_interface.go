package promoRepo

import (
	"context"
	"time"

	"sparklean/models"
)

// PromoRepository defines methods for promo code, claim and redemption access.
type PromoRepository interface {
	// GetCode retrieves a promo code definition.
	GetCode(ctx context.Context, code string) (*models.PromoCode, error)
	// CreateClaim inserts a new claim. Fails with ErrClaimExists when the
	// session already holds an active claim for the same code.
	CreateClaim(ctx context.Context, claim *models.PromoClaim) error
	// GetClaim retrieves a claim by its ID.
	GetClaim(ctx context.Context, id string) (*models.PromoClaim, error)
	// ActiveClaimForSession returns the session's stored-active claim, or
	// ErrClaimNotFound when the session holds none.
	ActiveClaimForSession(ctx context.Context, sessionID string) (*models.PromoClaim, error)
	// Redeem atomically flips the claim to redeemed and records the redemption,
	// but only if the claim is still active and unexpired at the moment of the
	// write. Losing the condition yields ErrClaimNotActive.
	Redeem(ctx context.Context, claimID, bookingID string, now time.Time) (*models.PromoRedemption, error)
	// Release undoes a redemption whose booking write failed; best effort.
	Release(ctx context.Context, claimID, bookingID string) error
	// Revoke marks a claim revoked with a reason. Idempotent on terminal claims.
	Revoke(ctx context.Context, claimID, reason string) error
	// ExpireLapsedClaims flips stored-active claims past their window to
	// expired and reports how many were updated.
	ExpireLapsedClaims(ctx context.Context, now time.Time) (int64, error)
}
