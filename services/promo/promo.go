package promo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	promoRepo "sparklean/database/repository/promo"
	"sparklean/models"
)

// DefaultPromoService implements PromoService.
type DefaultPromoService struct {
	Repo     promoRepo.PromoRepository
	ClaimTTL time.Duration
	// Now is the clock; tests override it.
	Now func() time.Time
}

func (s *DefaultPromoService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Claim validates the code and issues a provisional claim for the session.
func (s *DefaultPromoService) Claim(ctx context.Context, code, sessionID, serviceSlug, email string) (*models.PromoClaim, error) {
	pc, err := s.Repo.GetCode(ctx, code)
	if err != nil {
		if errors.Is(err, promoRepo.ErrCodeNotFound) {
			return nil, NewCodeInvalid(code)
		}
		return nil, err
	}
	if !pc.Active {
		return nil, NewCodeInvalid(code)
	}
	if pc.AppliesTo != models.PromoScopeAny && pc.AppliesTo != serviceSlug {
		return nil, NewScopeMismatch(code, serviceSlug)
	}

	now := s.now()
	claim := &models.PromoClaim{
		ID:            uuid.New().String(),
		Code:          pc.Code,
		AppliesTo:     pc.AppliesTo,
		DiscountType:  pc.DiscountType,
		DiscountValue: pc.DiscountValue,
		SessionID:     sessionID,
		Email:         email,
		ClaimedAt:     now,
		ExpiresAt:     now.Add(s.ClaimTTL),
		Status:        models.ClaimActive,
	}

	if err := s.Repo.CreateClaim(ctx, claim); err != nil {
		if errors.Is(err, promoRepo.ErrClaimExists) {
			return nil, NewAlreadyClaimed(code)
		}
		return nil, err
	}

	zap.L().Info("promo claim issued",
		zap.String("code", claim.Code),
		zap.String("sessionId", sessionID),
		zap.Time("expiresAt", claim.ExpiresAt))
	return claim, nil
}

// ActiveClaim returns the session's usable claim, applying lazy expiry: a
// stored-active claim past its window is reported as absent even before the
// background sweep flips it.
func (s *DefaultPromoService) ActiveClaim(ctx context.Context, sessionID string) (*models.PromoClaim, error) {
	claim, err := s.Repo.ActiveClaimForSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, promoRepo.ErrClaimNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if claim.EffectiveStatus(s.now()) != models.ClaimActive {
		return nil, nil
	}
	return claim, nil
}

// Redeem spends the claim for the given booking via the repository's atomic
// conditional write.
func (s *DefaultPromoService) Redeem(ctx context.Context, claimID, bookingID string) (*models.PromoRedemption, error) {
	redemption, err := s.Repo.Redeem(ctx, claimID, bookingID, s.now())
	if err != nil {
		if errors.Is(err, promoRepo.ErrClaimNotActive) {
			return nil, NewPromoNoLongerValid(claimID)
		}
		return nil, err
	}
	zap.L().Info("promo claim redeemed",
		zap.String("claimId", claimID),
		zap.String("bookingId", bookingID),
		zap.String("code", redemption.Code))
	return redemption, nil
}

// Release undoes a redemption after a failed booking write.
func (s *DefaultPromoService) Release(ctx context.Context, claimID, bookingID string) error {
	return s.Repo.Release(ctx, claimID, bookingID)
}

// Revoke marks a claim revoked with a reason; idempotent on terminal claims.
func (s *DefaultPromoService) Revoke(ctx context.Context, claimID, reason string) error {
	if err := s.Repo.Revoke(ctx, claimID, reason); err != nil {
		return err
	}
	zap.L().Info("promo claim revoked",
		zap.String("claimId", claimID),
		zap.String("reason", reason))
	return nil
}

// ExpireLapsed flips stored-active claims whose window has passed.
func (s *DefaultPromoService) ExpireLapsed(ctx context.Context) (int64, error) {
	return s.Repo.ExpireLapsedClaims(ctx, s.now())
}
