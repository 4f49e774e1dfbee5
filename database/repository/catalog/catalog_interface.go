package catalogRepo

import (
	"context"

	"sparklean/models"
)

// CatalogRepository defines read access to services, extras and cleaners.
type CatalogRepository interface {
	GetService(ctx context.Context, id string) (*models.Service, error)
	GetServiceBySlug(ctx context.Context, slug string) (*models.Service, error)
	ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error)
	GetExtra(ctx context.Context, id string) (*models.Extra, error)
	ListExtras(ctx context.Context, activeOnly bool) ([]models.Extra, error)
	GetCleaner(ctx context.Context, id string) (*models.Cleaner, error)
	ListCleaners(ctx context.Context, activeOnly bool) ([]models.Cleaner, error)
}
