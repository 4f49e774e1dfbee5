package promoRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sparklean/database"
	"sparklean/models"
)

var (
	// ErrCodeNotFound is returned when the promo code does not exist.
	ErrCodeNotFound = errors.New("promo code not found")
	// ErrClaimNotFound is returned when no claim matches the lookup.
	ErrClaimNotFound = errors.New("promo claim not found")
	// ErrClaimExists is returned when the session already holds an active claim
	// for the code.
	ErrClaimExists = errors.New("active claim already exists for this session and code")
	// ErrClaimNotActive is returned when the conditional redeem write matched no
	// active, unexpired claim.
	ErrClaimNotActive = errors.New("promo claim is no longer active")
)

// MongoPromoRepo implements PromoRepository using MongoDB.
type MongoPromoRepo struct {
	codes       *mongo.Collection
	claims      *mongo.Collection
	redemptions *mongo.Collection
}

// NewMongoPromoRepo creates a new instance of PromoRepository using MongoDB.
func NewMongoPromoRepo() PromoRepository {
	db := database.DB()
	repo := &MongoPromoRepo{
		codes:       db.Collection("promo_codes"),
		claims:      db.Collection("promo_claims"),
		redemptions: db.Collection("promo_redemptions"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create promo indexes: %v\n", err)
	}
	return repo
}

func (r *MongoPromoRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.codes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("codes indexes: %w", err)
	}

	// The partial unique index is what enforces "one active claim per
	// (sessionId, code)"; CreateClaim relies on the duplicate-key error.
	claimModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys: bson.D{{Key: "sessionId", Value: 1}, {Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(
				bson.M{"status": models.ClaimActive},
			),
		},
		{Keys: bson.D{{Key: "expiresAt", Value: 1}}},
	}
	if _, err := r.claims.Indexes().CreateMany(ctx, claimModels); err != nil {
		return fmt.Errorf("claims indexes: %w", err)
	}

	// One redemption per booking and one per claim.
	redemptionModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "bookingId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "claimId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.redemptions.Indexes().CreateMany(ctx, redemptionModels); err != nil {
		return fmt.Errorf("redemptions indexes: %w", err)
	}
	return nil
}

// GetCode retrieves a promo code definition.
func (r *MongoPromoRepo) GetCode(ctx context.Context, code string) (*models.PromoCode, error) {
	var pc models.PromoCode
	err := r.codes.FindOne(ctx, bson.M{"code": code}).Decode(&pc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCodeNotFound
		}
		return nil, fmt.Errorf("failed to fetch promo code: %w", err)
	}
	return &pc, nil
}
