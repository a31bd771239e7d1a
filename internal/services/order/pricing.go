package order

import (
	"context"

	"github.com/shopspring/decimal"

	"food-delivery/internal/logger"
	"food-delivery/internal/models"
)

// CatalogStore resolves meal identifiers against the registered catalog.
// The backing store is not unique-indexed on mealId, so a lookup can
// return more than one row.
type CatalogStore interface {
	FindByMealID(ctx context.Context, mealID string) ([]models.CatalogItem, error)
}

// PricingResult is the aggregate of resolving an order's line items.
type PricingResult struct {
	Lines                    []models.OrderLineDetail
	TotalCost                decimal.Decimal
	TotalPreparationMinutes  int
	EstimatedDeliveryMinutes int
	RestaurantIDs            []string
}

// PricingEngine resolves requested meals against the catalog and
// accumulates cost and preparation time.
type PricingEngine struct {
	catalog        CatalogStore
	logger         *logger.Logger
	pickupMinutes  int
	transitMinutes int
}

// NewPricingEngine creates a pricing engine. pickupMinutes and
// transitMinutes are delivery policy, added on top of accumulated
// preparation time to estimate delivery.
func NewPricingEngine(catalog CatalogStore, log *logger.Logger, pickupMinutes, transitMinutes int) *PricingEngine {
	return &PricingEngine{
		catalog:        catalog,
		logger:         log,
		pickupMinutes:  pickupMinutes,
		transitMinutes: transitMinutes,
	}
}

// Price resolves each selection against the catalog. Selections that do
// not resolve are skipped with a warning rather than failing the order:
// a partially stale catalog reference reduces the total, it does not
// reject the submission. Lookup errors are tolerated the same way.
func (e *PricingEngine) Price(ctx context.Context, selections []models.MealSelection, requestID string) *PricingResult {
	// Slices start non-nil so an order with no resolvable items still
	// persists as an empty set, not SQL NULL.
	result := &PricingResult{
		Lines:         []models.OrderLineDetail{},
		TotalCost:     decimal.Zero,
		RestaurantIDs: []string{},
	}
	seenRestaurants := make(map[string]bool)

	for _, selection := range selections {
		quantity := selection.Quantity
		if quantity < 1 {
			quantity = 1
		}

		matches, err := e.catalog.FindByMealID(ctx, selection.MealID)
		if err != nil {
			e.logger.Error("catalog_lookup_failed", "Failed to look up meal, skipping item", requestID, err, map[string]interface{}{
				"meal_id": selection.MealID,
			})
			continue
		}
		if len(matches) == 0 {
			e.logger.Warn("meal_not_found", "Meal not found in catalog, skipping item", requestID, map[string]interface{}{
				"meal_id": selection.MealID,
			})
			continue
		}
		if len(matches) > 1 {
			e.logger.Warn("meal_ambiguous", "Multiple catalog entries for meal, using first match", requestID, map[string]interface{}{
				"meal_id": selection.MealID,
				"matches": len(matches),
			})
		}

		meal := matches[0]

		result.TotalCost = result.TotalCost.Add(meal.Price.Mul(decimal.NewFromInt(int64(quantity))))
		result.TotalPreparationMinutes += meal.PreparationMinutes * quantity

		if !seenRestaurants[meal.RestaurantID] {
			seenRestaurants[meal.RestaurantID] = true
			result.RestaurantIDs = append(result.RestaurantIDs, meal.RestaurantID)
		}

		result.Lines = append(result.Lines, models.OrderLineDetail{
			MealID:             meal.MealID,
			Name:               meal.Name,
			Price:              meal.Price,
			Quantity:           quantity,
			PreparationMinutes: meal.PreparationMinutes,
			RestaurantName:     meal.RestaurantName,
		})
	}

	result.EstimatedDeliveryMinutes = result.TotalPreparationMinutes + e.pickupMinutes + e.transitMinutes

	return result
}
