package promoRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"sparklean/models"
)

// CreateClaim inserts a new claim document. The partial unique index on
// (sessionId, code, status=active) turns a duplicate active claim into a
// duplicate-key error, which is surfaced as ErrClaimExists.
func (r *MongoPromoRepo) CreateClaim(ctx context.Context, claim *models.PromoClaim) error {
	if _, err := r.claims.InsertOne(ctx, claim); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrClaimExists
		}
		return fmt.Errorf("failed to create promo claim: %w", err)
	}
	return nil
}

// GetClaim retrieves a claim document by its ID.
func (r *MongoPromoRepo) GetClaim(ctx context.Context, id string) (*models.PromoClaim, error) {
	var claim models.PromoClaim
	err := r.claims.FindOne(ctx, bson.M{"id": id}).Decode(&claim)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrClaimNotFound
		}
		return nil, fmt.Errorf("failed to fetch promo claim: %w", err)
	}
	return &claim, nil
}

// ActiveClaimForSession returns the session's stored-active claim. A session
// can hold active claims for different codes, so the most recently claimed
// one wins.
func (r *MongoPromoRepo) ActiveClaimForSession(ctx context.Context, sessionID string) (*models.PromoClaim, error) {
	var claim models.PromoClaim
	filter := bson.M{"sessionId": sessionID, "status": models.ClaimActive}
	opts := options.FindOne().SetSort(bson.D{{Key: "claimedAt", Value: -1}})
	err := r.claims.FindOne(ctx, filter, opts).Decode(&claim)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrClaimNotFound
		}
		return nil, fmt.Errorf("failed to fetch active claim: %w", err)
	}
	return &claim, nil
}

// Redeem performs the single atomic conditional write that prevents
// double-spending: the claim flips to redeemed only if it is still active and
// its window has not passed at the moment the update executes. Exactly one
// concurrent caller can win; everyone else gets ErrClaimNotActive. The
// redemption insert happens after the flip and only the winner reaches it.
func (r *MongoPromoRepo) Redeem(ctx context.Context, claimID, bookingID string, now time.Time) (*models.PromoRedemption, error) {
	filter := bson.M{
		"id":        claimID,
		"status":    models.ClaimActive,
		"expiresAt": bson.M{"$gt": now},
	}
	update := bson.M{"$set": bson.M{"status": models.ClaimRedeemed}}

	var claim models.PromoClaim
	err := r.claims.FindOneAndUpdate(ctx, filter, update).Decode(&claim)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrClaimNotActive
		}
		return nil, fmt.Errorf("failed to redeem claim %s: %w", claimID, err)
	}

	redemption := &models.PromoRedemption{
		BookingID:     bookingID,
		ClaimID:       claim.ID,
		Code:          claim.Code,
		DiscountType:  claim.DiscountType,
		DiscountValue: claim.DiscountValue,
		RedeemedAt:    now,
	}
	if _, err := r.redemptions.InsertOne(ctx, redemption); err != nil {
		// The claim is already flipped; put it back so the code is not lost.
		if rbErr := r.rollbackRedeem(ctx, claimID); rbErr != nil {
			zap.L().Error("failed to roll back redeemed claim",
				zap.String("claimId", claimID), zap.Error(rbErr))
		}
		return nil, fmt.Errorf("failed to record redemption for claim %s: %w", claimID, err)
	}
	return redemption, nil
}

func (r *MongoPromoRepo) rollbackRedeem(ctx context.Context, claimID string) error {
	filter := bson.M{"id": claimID, "status": models.ClaimRedeemed}
	update := bson.M{"$set": bson.M{"status": models.ClaimActive}}
	_, err := r.claims.UpdateOne(ctx, filter, update)
	return err
}

// Release undoes a redemption whose booking write failed afterwards.
func (r *MongoPromoRepo) Release(ctx context.Context, claimID, bookingID string) error {
	if _, err := r.redemptions.DeleteOne(ctx, bson.M{"claimId": claimID, "bookingId": bookingID}); err != nil {
		return fmt.Errorf("failed to delete redemption for claim %s: %w", claimID, err)
	}
	return r.rollbackRedeem(ctx, claimID)
}

// Revoke marks a claim revoked. A claim already in a terminal state is left
// untouched and no error is reported.
func (r *MongoPromoRepo) Revoke(ctx context.Context, claimID, reason string) error {
	filter := bson.M{"id": claimID, "status": models.ClaimActive}
	update := bson.M{"$set": bson.M{
		"status":       models.ClaimRevoked,
		"revokeReason": reason,
	}}
	result, err := r.claims.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to revoke claim %s: %w", claimID, err)
	}
	if result.MatchedCount == 0 {
		// Either unknown or already terminal; distinguish for the caller.
		if _, getErr := r.GetClaim(ctx, claimID); getErr != nil {
			return getErr
		}
	}
	return nil
}

// ExpireLapsedClaims is the background sweep that flips stored-active claims
// past their expiry window. Decision paths never wait for it; reads treat such
// claims as expired already.
func (r *MongoPromoRepo) ExpireLapsedClaims(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{
		"status":    models.ClaimActive,
		"expiresAt": bson.M{"$lte": now},
	}
	update := bson.M{"$set": bson.M{"status": models.ClaimExpired}}
	result, err := r.claims.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to expire lapsed claims: %w", err)
	}
	return result.ModifiedCount, nil
}
