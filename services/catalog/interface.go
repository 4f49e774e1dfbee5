package catalog

import (
	"context"

	"sparklean/models"
)

// CatalogService exposes the service/extras/cleaner catalog the wizard and the
// pricing engine read from.
type CatalogService interface {
	GetService(ctx context.Context, id string) (*models.Service, error)
	GetServiceBySlug(ctx context.Context, slug string) (*models.Service, error)
	ListServices(ctx context.Context) ([]models.Service, error)
	GetExtra(ctx context.Context, id string) (*models.Extra, error)
	// ExtrasByID resolves a set of extra ids in one call. Ids missing from the
	// catalog are simply absent from the result; the caller decides whether
	// that is a validation failure or a logged inconsistency.
	ExtrasByID(ctx context.Context, ids []string) (map[string]models.Extra, error)
	ListExtras(ctx context.Context) ([]models.Extra, error)
	GetCleaner(ctx context.Context, id string) (*models.Cleaner, error)
	ListCleaners(ctx context.Context) ([]models.Cleaner, error)
}
