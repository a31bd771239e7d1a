package catalog

import (
	"context"
	"encoding/json"
	"time"

	"food-delivery/internal/cache"
	"food-delivery/internal/logger"
	"food-delivery/internal/models"
)

const listingCacheTTL = 5 * time.Minute

// Store is the catalog's persistence surface.
type Store interface {
	FindByMealID(ctx context.Context, mealID string) ([]models.CatalogItem, error)
	ListByArea(ctx context.Context, area string) ([]models.CatalogItem, error)
	Register(ctx context.Context, req *models.RegisterMealRequest) (string, error)
}

// Service serves catalog reads, fronting area listings with an optional
// read-through cache. cache may be nil, in which case every read hits
// the store.
type Service struct {
	store  Store
	cache  cache.Cache
	logger *logger.Logger
}

// NewService creates a catalog service.
func NewService(store Store, c cache.Cache, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		cache:  c,
		logger: log,
	}
}

// ListByArea returns available meals for one area, served from cache
// when possible. Cache failures fall back to the store.
func (s *Service) ListByArea(ctx context.Context, area, requestID string) ([]models.CatalogItem, error) {
	var cacheKey string
	if s.cache != nil {
		cacheKey = s.cache.GenerateKey("meals_by_area", area)
		cached, err := s.cache.Get(ctx, cacheKey)
		if err != nil {
			s.logger.Warn("cache_read_failed", "Catalog cache read failed, falling back to store", requestID, map[string]interface{}{
				"area": area,
			})
		} else if cached != "" {
			var items []models.CatalogItem
			if err := json.Unmarshal([]byte(cached), &items); err == nil {
				return items, nil
			}
		}
	}

	items, err := s.store.ListByArea(ctx, area)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(items); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(encoded), listingCacheTTL); err != nil {
				s.logger.Warn("cache_write_failed", "Catalog cache write failed", requestID, map[string]interface{}{
					"area": area,
				})
			}
		}
	}

	return items, nil
}

// Register adds a meal to the catalog for each of its delivery areas.
func (s *Service) Register(ctx context.Context, req *models.RegisterMealRequest, requestID string) (string, error) {
	mealID, err := s.store.Register(ctx, req)
	if err != nil {
		return "", err
	}

	s.logger.Info("meal_registered", "Registered catalog item", requestID, map[string]interface{}{
		"meal_id": mealID,
		"name":    req.Name,
		"areas":   req.DeliveryAreas,
	})

	return mealID, nil
}
