package models

import "github.com/shopspring/decimal"

// CatalogItem is a registered meal, read-only to the order pipeline.
type CatalogItem struct {
	MealID             string          `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price"`
	PreparationMinutes int             `json:"preparationTime"`
	Category           string          `json:"category"`
	RestaurantID       string          `json:"restaurantId"`
	RestaurantName     string          `json:"restaurantName"`
	Area               string          `json:"area"`
	IsVegetarian       bool            `json:"isVegetarian"`
	Calories           int             `json:"calories"`
	IsAvailable        bool            `json:"-"`
}

// RegisterMealRequest is the inbound payload for registering a catalog item.
// One catalog row is created per delivery area.
type RegisterMealRequest struct {
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price"`
	PreparationMinutes int             `json:"preparationTime"`
	DeliveryAreas      []string        `json:"deliveryAreas"`
	RestaurantName     string          `json:"restaurantName"`
	Category           string          `json:"category,omitempty"`
	IsVegetarian       bool            `json:"isVegetarian,omitempty"`
	Calories           int             `json:"calories,omitempty"`
}
