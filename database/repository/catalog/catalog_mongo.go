package catalogRepo

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
	// ErrServiceNotFound is returned when no service matches the lookup.
	ErrServiceNotFound = errors.New("service not found")
	// ErrExtraNotFound is returned when no extra matches the lookup.
	ErrExtraNotFound = errors.New("extra not found")
	// ErrCleanerNotFound is returned when no cleaner matches the lookup.
	ErrCleanerNotFound = errors.New("cleaner not found")
)

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	services *mongo.Collection
	extras   *mongo.Collection
	cleaners *mongo.Collection
}

// NewMongoCatalogRepo creates a new instance of CatalogRepository using MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.DB()
	repo := &MongoCatalogRepo{
		services: db.Collection("services"),
		extras:   db.Collection("extras"),
		cleaners: db.Collection("cleaners"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create catalog indexes: %v\n", err)
	}
	return repo
}

func (r *MongoCatalogRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	serviceModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.services.Indexes().CreateMany(ctx, serviceModels); err != nil {
		return fmt.Errorf("services indexes: %w", err)
	}
	if _, err := r.extras.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("extras indexes: %w", err)
	}
	if _, err := r.cleaners.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("cleaners indexes: %w", err)
	}
	return nil
}

// GetService retrieves a service definition by ID.
func (r *MongoCatalogRepo) GetService(ctx context.Context, id string) (*models.Service, error) {
	var svc models.Service
	if err := r.services.FindOne(ctx, bson.M{"id": id}).Decode(&svc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to fetch service %s: %w", id, err)
	}
	return &svc, nil
}

// GetServiceBySlug retrieves a service definition by slug.
func (r *MongoCatalogRepo) GetServiceBySlug(ctx context.Context, slug string) (*models.Service, error) {
	var svc models.Service
	if err := r.services.FindOne(ctx, bson.M{"slug": slug}).Decode(&svc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to fetch service %s: %w", slug, err)
	}
	return &svc, nil
}

// ListServices returns services, optionally only active ones.
func (r *MongoCatalogRepo) ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	cursor, err := r.services.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

// GetExtra retrieves an extra definition by ID.
func (r *MongoCatalogRepo) GetExtra(ctx context.Context, id string) (*models.Extra, error) {
	var extra models.Extra
	if err := r.extras.FindOne(ctx, bson.M{"id": id}).Decode(&extra); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrExtraNotFound
		}
		return nil, fmt.Errorf("failed to fetch extra %s: %w", id, err)
	}
	return &extra, nil
}

// ListExtras returns extras, optionally only active ones.
func (r *MongoCatalogRepo) ListExtras(ctx context.Context, activeOnly bool) ([]models.Extra, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	cursor, err := r.extras.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list extras: %w", err)
	}
	defer cursor.Close(ctx)

	var extras []models.Extra
	if err := cursor.All(ctx, &extras); err != nil {
		return nil, fmt.Errorf("failed to decode extras: %w", err)
	}
	return extras, nil
}

// GetCleaner retrieves a cleaner profile by ID.
func (r *MongoCatalogRepo) GetCleaner(ctx context.Context, id string) (*models.Cleaner, error) {
	var cleaner models.Cleaner
	if err := r.cleaners.FindOne(ctx, bson.M{"id": id}).Decode(&cleaner); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCleanerNotFound
		}
		return nil, fmt.Errorf("failed to fetch cleaner %s: %w", id, err)
	}
	return &cleaner, nil
}

// ListCleaners returns cleaner profiles, optionally only active ones.
func (r *MongoCatalogRepo) ListCleaners(ctx context.Context, activeOnly bool) ([]models.Cleaner, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	cursor, err := r.cleaners.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list cleaners: %w", err)
	}
	defer cursor.Close(ctx)

	var cleaners []models.Cleaner
	if err := cursor.All(ctx, &cleaners); err != nil {
		return nil, fmt.Errorf("failed to decode cleaners: %w", err)
	}
	return cleaners, nil
}
