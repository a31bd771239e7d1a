package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotificationMessage is the delayed queue payload announcing that an
// order is being prepared.
type NotificationMessage struct {
	OrderID      string    `json:"orderId"`
	OrderNumber  string    `json:"orderNumber"`
	CustomerName string    `json:"customerName"`
	Area         string    `json:"area"`
	Status       string    `json:"status"`
	Message      string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewNotificationMessage builds the preparing-notification for a persisted order.
func NewNotificationMessage(order *Order) *NotificationMessage {
	return &NotificationMessage{
		OrderID:      order.ID,
		OrderNumber:  order.Number,
		CustomerName: order.CustomerName,
		Area:         order.Area,
		Status:       string(StatusPreparing),
		Message:      fmt.Sprintf("Your order %s is being prepared.", order.Number),
		Timestamp:    time.Now().UTC(),
	}
}

// InvalidOrderRecord captures a rejected submission for offline inspection.
// Write-once; never read by the order pipeline.
type InvalidOrderRecord struct {
	ID        string          `json:"id"`
	Reason    string          `json:"reason"`
	OrderData json.RawMessage `json:"orderData"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewInvalidOrderRecord wraps a rejected raw payload with a reason.
func NewInvalidOrderRecord(reason string, payload json.RawMessage) *InvalidOrderRecord {
	return &InvalidOrderRecord{
		ID:        uuid.NewString(),
		Reason:    reason,
		OrderData: payload,
		Timestamp: time.Now().UTC(),
	}
}
