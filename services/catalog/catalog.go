package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	catalogRepo "sparklean/database/repository/catalog"
	"sparklean/models"
	"sparklean/utils"
)

// DefaultCatalogService implements CatalogService with a Redis read-through
// cache in front of the repository. Cache failures degrade to repository reads.
type DefaultCatalogService struct {
	Repo  catalogRepo.CatalogRepository
	Cache *redis.Client
}

// GetService retrieves a service definition, cache first.
func (s *DefaultCatalogService) GetService(ctx context.Context, id string) (*models.Service, error) {
	key := utils.CatalogCachePrefix + "service:" + id
	var svc models.Service
	if s.cachedGet(ctx, key, &svc) {
		return &svc, nil
	}

	fetched, err := s.Repo.GetService(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, NewServiceMismatch(id)
		}
		return nil, fmt.Errorf("catalog: %w", err)
	}
	s.cachedSet(ctx, key, fetched)
	return fetched, nil
}

// GetServiceBySlug retrieves a service definition by slug, cache first.
func (s *DefaultCatalogService) GetServiceBySlug(ctx context.Context, slug string) (*models.Service, error) {
	key := utils.CatalogCachePrefix + "service-slug:" + slug
	var svc models.Service
	if s.cachedGet(ctx, key, &svc) {
		return &svc, nil
	}

	fetched, err := s.Repo.GetServiceBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, NewServiceMismatch(slug)
		}
		return nil, fmt.Errorf("catalog: %w", err)
	}
	s.cachedSet(ctx, key, fetched)
	return fetched, nil
}

// ListServices returns all active services.
func (s *DefaultCatalogService) ListServices(ctx context.Context) ([]models.Service, error) {
	return s.Repo.ListServices(ctx, true)
}

// GetExtra retrieves an extra definition, cache first.
func (s *DefaultCatalogService) GetExtra(ctx context.Context, id string) (*models.Extra, error) {
	key := utils.CatalogCachePrefix + "extra:" + id
	var extra models.Extra
	if s.cachedGet(ctx, key, &extra) {
		return &extra, nil
	}

	fetched, err := s.Repo.GetExtra(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrExtraNotFound) {
			return nil, NewExtraMismatch(id)
		}
		return nil, fmt.Errorf("catalog: %w", err)
	}
	s.cachedSet(ctx, key, fetched)
	return fetched, nil
}

// ExtrasByID resolves the given extra ids; missing ids are omitted.
func (s *DefaultCatalogService) ExtrasByID(ctx context.Context, ids []string) (map[string]models.Extra, error) {
	extras := make(map[string]models.Extra, len(ids))
	for _, id := range ids {
		extra, err := s.GetExtra(ctx, id)
		if err != nil {
			var mismatch *MismatchError
			if errors.As(err, &mismatch) {
				continue
			}
			return nil, err
		}
		extras[id] = *extra
	}
	return extras, nil
}

// ListExtras returns all active extras.
func (s *DefaultCatalogService) ListExtras(ctx context.Context) ([]models.Extra, error) {
	return s.Repo.ListExtras(ctx, true)
}

// GetCleaner retrieves a cleaner profile.
func (s *DefaultCatalogService) GetCleaner(ctx context.Context, id string) (*models.Cleaner, error) {
	cleaner, err := s.Repo.GetCleaner(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return cleaner, nil
}

// ListCleaners returns all active cleaner profiles.
func (s *DefaultCatalogService) ListCleaners(ctx context.Context) ([]models.Cleaner, error) {
	return s.Repo.ListCleaners(ctx, true)
}

func (s *DefaultCatalogService) cachedGet(ctx context.Context, key string, out interface{}) bool {
	if s.Cache == nil {
		return false
	}
	data, err := s.Cache.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		zap.L().Warn("catalog: corrupt cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *DefaultCatalogService) cachedSet(ctx context.Context, key string, v interface{}) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, data, utils.CatalogCacheTTL).Err(); err != nil {
		zap.L().Warn("catalog: failed to cache entry", zap.String("key", key), zap.Error(err))
	}
}
