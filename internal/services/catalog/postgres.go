package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"food-delivery/internal/database"
	"food-delivery/internal/models"
)

// Repository reads and writes the meals catalog in PostgreSQL.
type Repository struct {
	db *database.DB
}

// NewRepository creates a catalog repository.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// FindByMealID returns every catalog row registered under mealID.
// meal_id is not unique-indexed, so callers must handle multiple matches.
func (r *Repository) FindByMealID(ctx context.Context, mealID string) ([]models.CatalogItem, error) {
	rows, err := r.db.Pool.Query(ctx, database.FindMealByIDSQL, mealID)
	if err != nil {
		return nil, fmt.Errorf("failed to query meal %s: %w", mealID, err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// ListByArea returns available meals for one delivery area.
func (r *Repository) ListByArea(ctx context.Context, area string) ([]models.CatalogItem, error) {
	rows, err := r.db.Pool.Query(ctx, database.ListMealsByAreaSQL, area)
	if err != nil {
		return nil, fmt.Errorf("failed to query meals for area %s: %w", area, err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// Register inserts one catalog row per delivery area and returns the
// generated meal id shared by all rows.
func (r *Repository) Register(ctx context.Context, req *models.RegisterMealRequest) (string, error) {
	mealID := uuid.NewString()
	restaurantID := uuid.NewString()
	category := req.Category
	if category == "" {
		category = "Main Course"
	}

	for _, area := range req.DeliveryAreas {
		_, err := r.db.Pool.Exec(ctx, database.InsertMealSQL,
			mealID, req.Name, req.Description, req.Price.String(), req.PreparationMinutes,
			category, restaurantID, req.RestaurantName, area, req.IsVegetarian, req.Calories)
		if err != nil {
			return "", fmt.Errorf("failed to register meal in area %s: %w", area, err)
		}
	}

	return mealID, nil
}

func scanItems(rows pgx.Rows) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	for rows.Next() {
		var (
			item  models.CatalogItem
			price string
		)
		err := rows.Scan(&item.MealID, &item.Name, &item.Description, &price,
			&item.PreparationMinutes, &item.Category, &item.RestaurantID,
			&item.RestaurantName, &item.Area, &item.IsVegetarian, &item.Calories,
			&item.IsAvailable)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal row: %w", err)
		}
		if item.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("failed to parse meal price: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
