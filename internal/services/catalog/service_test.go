package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"food-delivery/internal/logger"
	"food-delivery/internal/models"
)

type fakeStore struct {
	byArea   map[string][]models.CatalogItem
	listErr  error
	lastArea string
	reads    int
}

func (f *fakeStore) FindByMealID(_ context.Context, mealID string) ([]models.CatalogItem, error) {
	return nil, nil
}

func (f *fakeStore) ListByArea(_ context.Context, area string) ([]models.CatalogItem, error) {
	f.reads++
	f.lastArea = area
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.byArea[area], nil
}

func (f *fakeStore) Register(_ context.Context, req *models.RegisterMealRequest) (string, error) {
	return "meal-id", nil
}

type fakeCache struct {
	data map[string]string
	err  error
}

func (f *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	if f.err != nil {
		return f.err
	}
	if f.data == nil {
		f.data = map[string]string{}
	}
	f.data[key] = value
	return nil
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.data[key], nil
}

func (f *fakeCache) GenerateKey(operation, key string) string {
	return "test:" + operation + ":" + key
}

func sampleItems() []models.CatalogItem {
	return []models.CatalogItem{
		{MealID: "m1", Name: "Margherita Pizza", Price: decimal.RequireFromString("12.99"), Area: "Central"},
	}
}

func TestListByArea_CacheMissThenHit(t *testing.T) {
	store := &fakeStore{byArea: map[string][]models.CatalogItem{"Central": sampleItems()}}
	c := &fakeCache{}
	svc := NewService(store, c, logger.New("test"))

	items, err := svc.ListByArea(context.Background(), "Central", "req")
	if err != nil {
		t.Fatalf("ListByArea returned error: %v", err)
	}
	if len(items) != 1 || store.reads != 1 {
		t.Fatalf("expected one store read, got %d", store.reads)
	}

	// Second call must be served from cache.
	items, err = svc.ListByArea(context.Background(), "Central", "req")
	if err != nil {
		t.Fatalf("ListByArea returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one item from cache, got %d", len(items))
	}
	if store.reads != 1 {
		t.Errorf("expected cached read, store was hit %d times", store.reads)
	}
}

func TestListByArea_CacheFailureFallsBack(t *testing.T) {
	store := &fakeStore{byArea: map[string][]models.CatalogItem{"North": sampleItems()}}
	c := &fakeCache{err: errors.New("redis down")}
	svc := NewService(store, c, logger.New("test"))

	items, err := svc.ListByArea(context.Background(), "North", "req")
	if err != nil {
		t.Fatalf("expected fallback to store, got %v", err)
	}
	if len(items) != 1 {
		t.Errorf("expected one item, got %d", len(items))
	}
}

func TestListByArea_NoCache(t *testing.T) {
	store := &fakeStore{byArea: map[string][]models.CatalogItem{"South": sampleItems()}}
	svc := NewService(store, nil, logger.New("test"))

	if _, err := svc.ListByArea(context.Background(), "South", "req"); err != nil {
		t.Fatalf("ListByArea returned error: %v", err)
	}
	if store.lastArea != "South" {
		t.Errorf("store queried with %q", store.lastArea)
	}
}

func TestListByArea_StoreError(t *testing.T) {
	store := &fakeStore{listErr: errors.New("db down")}
	svc := NewService(store, nil, logger.New("test"))

	if _, err := svc.ListByArea(context.Background(), "Central", "req"); err == nil {
		t.Fatal("expected store error to surface")
	}
}

func TestListByArea_CachedPayloadRoundTrips(t *testing.T) {
	store := &fakeStore{byArea: map[string][]models.CatalogItem{"Central": sampleItems()}}
	c := &fakeCache{}
	svc := NewService(store, c, logger.New("test"))

	if _, err := svc.ListByArea(context.Background(), "Central", "req"); err != nil {
		t.Fatalf("ListByArea returned error: %v", err)
	}

	cached := c.data["test:meals_by_area:Central"]
	if cached == "" {
		t.Fatal("expected listing to be cached")
	}
	var items []models.CatalogItem
	if err := json.Unmarshal([]byte(cached), &items); err != nil {
		t.Fatalf("cached payload not valid JSON: %v", err)
	}
	if items[0].Name != "Margherita Pizza" {
		t.Errorf("cached item name = %q", items[0].Name)
	}
}
