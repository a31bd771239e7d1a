package order

import (
	"strings"
	"testing"

	"food-delivery/internal/models"
)

func TestValidateOrderRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     *models.OrderRequest
		wantErr string
	}{
		{
			name: "valid request",
			req: &models.OrderRequest{
				CustomerName:    "Ann",
				DeliveryAddress: "1 Main St",
				Area:            "Central",
				Meals:           []models.MealSelection{{MealID: "m1", Quantity: 2}},
			},
			wantErr: "",
		},
		{
			name: "missing customer name",
			req: &models.OrderRequest{
				DeliveryAddress: "1 Main St",
				Area:            "Central",
				Meals:           []models.MealSelection{{MealID: "m1"}},
			},
			wantErr: "Missing required fields: customerName",
		},
		{
			name: "missing several fields",
			req: &models.OrderRequest{
				Area:  "Central",
				Meals: []models.MealSelection{{MealID: "m1"}},
			},
			wantErr: "Missing required fields: customerName, deliveryAddress",
		},
		{
			name: "whitespace-only area",
			req: &models.OrderRequest{
				CustomerName:    "Ann",
				DeliveryAddress: "1 Main St",
				Area:            "   ",
				Meals:           []models.MealSelection{{MealID: "m1"}},
			},
			wantErr: "Missing required fields: area",
		},
		{
			name: "empty meals list",
			req: &models.OrderRequest{
				CustomerName:    "Ann",
				DeliveryAddress: "1 Main St",
				Area:            "Central",
				Meals:           []models.MealSelection{},
			},
			wantErr: "Meals must be a non-empty array",
		},
		{
			name: "nil meals list",
			req: &models.OrderRequest{
				CustomerName:    "Ann",
				DeliveryAddress: "1 Main St",
				Area:            "Central",
			},
			wantErr: "Meals must be a non-empty array",
		},
		{
			name: "meal without id",
			req: &models.OrderRequest{
				CustomerName:    "Ann",
				DeliveryAddress: "1 Main St",
				Area:            "Central",
				Meals:           []models.MealSelection{{MealID: ""}},
			},
			wantErr: "meals[0].mealId is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOrderRequest(tt.req)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateOrderRequest() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateOrderRequest() = nil, want error %q", tt.wantErr)
			}
			if _, ok := err.(ValidationError); !ok {
				t.Errorf("expected ValidationError, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateOrderRequest() error = %q, want %q", err.Error(), tt.wantErr)
			}
		})
	}
}
