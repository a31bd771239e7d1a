package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle status of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusPreparing OrderStatus = "Preparing"
)

// MealSelection is a single requested line item in an order submission.
type MealSelection struct {
	MealID   string `json:"mealId"`
	Quantity int    `json:"quantity"`
}

// OrderRequest is the untrusted inbound order submission payload.
type OrderRequest struct {
	CustomerName        string          `json:"customerName"`
	DeliveryAddress     string          `json:"deliveryAddress"`
	Area                string          `json:"area"`
	PhoneNumber         string          `json:"phoneNumber,omitempty"`
	SpecialInstructions string          `json:"specialInstructions,omitempty"`
	Meals               []MealSelection `json:"meals"`
}

// OrderLineDetail is a priced line item resolved against the catalog.
// Only selections that resolved are recorded; unresolved mealIds are
// dropped from pricing without failing the order.
type OrderLineDetail struct {
	MealID             string          `json:"mealId"`
	Name               string          `json:"name"`
	Price              decimal.Decimal `json:"price"`
	Quantity           int             `json:"quantity"`
	PreparationMinutes int             `json:"preparationTime"`
	RestaurantName     string          `json:"restaurantName"`
}

// Order is the persisted order record. Immutable once written; status
// transitions belong to other systems.
type Order struct {
	ID                       string            `json:"orderId"`
	Number                   string            `json:"orderNumber"`
	CustomerName             string            `json:"customerName"`
	DeliveryAddress          string            `json:"deliveryAddress"`
	Area                     string            `json:"area"`
	Phone                    string            `json:"phone,omitempty"`
	SpecialInstructions      string            `json:"specialInstructions,omitempty"`
	Lines                    []OrderLineDetail `json:"meals"`
	TotalCost                decimal.Decimal   `json:"totalCost"`
	TotalPreparationMinutes  int               `json:"totalPreparationTime"`
	EstimatedDeliveryMinutes int               `json:"estimatedDeliveryTime"`
	CreatedAt                time.Time         `json:"orderDate"`
	Status                   OrderStatus       `json:"status"`
	RestaurantIDs            []string          `json:"restaurantIds"`
}

// SubmitOrderResponse is returned to the caller after a successful submission.
type SubmitOrderResponse struct {
	Status                string           `json:"status"`
	Message               string           `json:"message"`
	OrderID               string           `json:"orderId"`
	OrderNumber           string           `json:"orderNumber"`
	TotalCost             decimal.Decimal  `json:"totalCost"`
	EstimatedDeliveryTime int              `json:"estimatedDeliveryTime"`
	DeliveryTimeFormatted string           `json:"deliveryTimeFormatted"`
	Data                  SubmitOrderExtra `json:"data"`
}

// SubmitOrderExtra carries the compact summary block of the submit response.
type SubmitOrderExtra struct {
	CustomerName string    `json:"customerName"`
	Area         string    `json:"area"`
	MealCount    int       `json:"mealCount"`
	OrderDate    time.Time `json:"orderDate"`
}

// GenerateOrderNumber derives a human-readable order number from the
// creation date and a prefix of the order id: ORD-YYYYMMDD-XXXXXX.
func GenerateOrderNumber(date time.Time, orderID string) string {
	prefix := orderID
	if len(prefix) > 6 {
		prefix = prefix[:6]
	}
	return fmt.Sprintf("ORD-%s-%s", date.Format("20060102"), strings.ToUpper(prefix))
}
