package order

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"food-delivery/internal/database"
	"food-delivery/internal/models"
)

// Repository persists orders and invalid-order records in PostgreSQL.
type Repository struct {
	db *database.DB
}

// NewRepository creates an order repository.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Insert appends one finalized order. The order pipeline never updates
// rows it has written.
func (r *Repository) Insert(ctx context.Context, order *models.Order) error {
	lines, err := json.Marshal(order.Lines)
	if err != nil {
		return fmt.Errorf("failed to serialize order lines: %w", err)
	}

	// pgx encodes a nil slice as SQL NULL and restaurant_ids is NOT NULL.
	restaurantIDs := order.RestaurantIDs
	if restaurantIDs == nil {
		restaurantIDs = []string{}
	}

	_, err = r.db.Pool.Exec(ctx, database.InsertOrderSQL,
		order.ID, order.Number, order.CustomerName, order.DeliveryAddress, order.Area,
		order.Phone, order.SpecialInstructions, lines, order.TotalCost.String(),
		order.TotalPreparationMinutes, order.EstimatedDeliveryMinutes,
		string(order.Status), restaurantIDs, order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// List returns all persisted orders, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Order, error) {
	rows, err := r.db.Pool.Query(ctx, database.ListOrdersSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var (
			order     models.Order
			lines     []byte
			totalCost string
			status    string
		)
		err := rows.Scan(&order.ID, &order.Number, &order.CustomerName, &order.DeliveryAddress,
			&order.Area, &order.Phone, &order.SpecialInstructions, &lines, &totalCost,
			&order.TotalPreparationMinutes, &order.EstimatedDeliveryMinutes,
			&status, &order.RestaurantIDs, &order.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}

		if err := json.Unmarshal(lines, &order.Lines); err != nil {
			return nil, fmt.Errorf("failed to parse order lines: %w", err)
		}
		if order.TotalCost, err = decimal.NewFromString(totalCost); err != nil {
			return nil, fmt.Errorf("failed to parse order total: %w", err)
		}
		order.Status = models.OrderStatus(status)

		orders = append(orders, order)
	}

	return orders, rows.Err()
}

// Append records one rejected submission. Write-once; nothing in the
// pipeline reads these rows back.
func (r *Repository) Append(ctx context.Context, rec *models.InvalidOrderRecord) error {
	payload := rec.OrderData
	if len(payload) == 0 || !json.Valid(payload) {
		// Keep even unparseable payloads, wrapped so the column stays JSONB.
		quoted, err := json.Marshal(string(payload))
		if err != nil {
			return fmt.Errorf("failed to wrap invalid payload: %w", err)
		}
		payload = quoted
	}

	_, err := r.db.Pool.Exec(ctx, database.InsertInvalidOrderSQL,
		rec.ID, rec.Reason, payload, rec.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert invalid order record: %w", err)
	}
	return nil
}
