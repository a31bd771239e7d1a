package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"food-delivery/internal/logger"
	"food-delivery/internal/models"
)

// DeliveryAreas are the zones sample data is seeded into.
var DeliveryAreas = []string{"Central", "North", "South"}

type sampleMeal struct {
	name        string
	price       string
	description string
	prepMinutes int
}

var sampleCatalog = map[string][]sampleMeal{
	"Italian": {
		{"Margherita Pizza", "12.99", "Classic pizza with tomato and mozzarella", 20},
		{"Spaghetti Carbonara", "14.50", "Pasta with eggs, cheese, and pancetta", 25},
		{"Lasagna", "16.75", "Layered pasta with meat and cheese", 30},
		{"Tiramisu", "8.99", "Coffee-flavored Italian dessert", 15},
		{"Garlic Bread", "5.99", "Toasted bread with garlic butter", 10},
	},
	"Mexican": {
		{"Chicken Burrito", "11.99", "Grilled chicken with rice and beans", 15},
		{"Beef Tacos", "9.99", "Three soft tacos with seasoned beef", 12},
		{"Guacamole & Chips", "7.50", "Fresh avocado dip with tortilla chips", 10},
		{"Enchiladas", "13.99", "Corn tortillas with chicken and cheese", 20},
		{"Churros", "6.50", "Fried dough pastry with cinnamon sugar", 10},
	},
	"Chinese": {
		{"Kung Pao Chicken", "13.99", "Spicy stir-fried chicken with peanuts", 18},
		{"Vegetable Spring Rolls", "6.99", "Crispy rolls with vegetables", 12},
		{"Beef Chow Mein", "14.50", "Stir-fried noodles with beef", 20},
		{"Sweet & Sour Pork", "15.99", "Crispy pork in tangy sauce", 22},
		{"Egg Fried Rice", "8.99", "Rice stir-fried with eggs and vegetables", 15},
	},
	"Indian": {
		{"Chicken Tikka Masala", "16.50", "Grilled chicken in creamy tomato sauce", 25},
		{"Vegetable Samosa", "5.99", "Spiced potato filled pastry", 10},
		{"Butter Chicken", "17.99", "Tender chicken in rich butter sauce", 28},
		{"Garlic Naan", "4.50", "Leavened bread with garlic butter", 8},
		{"Mango Lassi", "4.99", "Sweet yogurt drink with mango", 5},
	},
}

// Seed populates the catalog with one sample restaurant per cuisine in
// every delivery area. Intended for development and demos.
func Seed(ctx context.Context, store Store, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()
	seeded := 0

	for cuisine, meals := range sampleCatalog {
		restaurantName := fmt.Sprintf("%s Corner", cuisine)

		for _, meal := range meals {
			price, err := decimal.NewFromString(meal.price)
			if err != nil {
				return fmt.Errorf("invalid sample price %q: %w", meal.price, err)
			}

			req := &models.RegisterMealRequest{
				Name:               meal.name,
				Description:        meal.description,
				Price:              price,
				PreparationMinutes: meal.prepMinutes,
				DeliveryAreas:      DeliveryAreas,
				RestaurantName:     restaurantName,
				Category:           cuisine,
			}

			if _, err := store.Register(ctx, req); err != nil {
				return fmt.Errorf("failed to seed %s: %w", meal.name, err)
			}
			seeded++
		}
	}

	log.Info("catalog_seeded", fmt.Sprintf("Seeded %d sample meals", seeded), requestID, map[string]interface{}{
		"areas": DeliveryAreas,
	})

	return nil
}
