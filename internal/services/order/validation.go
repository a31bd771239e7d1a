package order

import (
	"fmt"
	"strings"

	"food-delivery/internal/models"
)

// ValidationError reports a structurally invalid order submission.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidateOrderRequest checks the structural shape of an order submission.
// Required fields are customerName, deliveryAddress and area; meals must
// be a non-empty list. Meal contents are not validated here: unresolvable
// mealIds are tolerated by the pricing engine instead.
func ValidateOrderRequest(req *models.OrderRequest) error {
	var missing []string
	if strings.TrimSpace(req.CustomerName) == "" {
		missing = append(missing, "customerName")
	}
	if strings.TrimSpace(req.DeliveryAddress) == "" {
		missing = append(missing, "deliveryAddress")
	}
	if strings.TrimSpace(req.Area) == "" {
		missing = append(missing, "area")
	}
	if len(missing) > 0 {
		return ValidationError{
			Message: fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")),
		}
	}

	if len(req.Meals) == 0 {
		return ValidationError{Message: "Meals must be a non-empty array"}
	}

	for i, meal := range req.Meals {
		if strings.TrimSpace(meal.MealID) == "" {
			return ValidationError{Message: fmt.Sprintf("meals[%d].mealId is required", i)}
		}
	}

	return nil
}
