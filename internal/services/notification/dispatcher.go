package notification

import (
	"context"
	"fmt"

	"food-delivery/internal/hub"
	"food-delivery/internal/logger"
	"food-delivery/internal/messaging"
	"food-delivery/internal/models"
)

// Sender delivers one notification to the push gateway.
type Sender interface {
	Send(ctx context.Context, data *hub.NotificationData) error
}

// Dispatcher consumes delayed notification messages and delivers them to
// the push notification gateway. It performs no retries of its own:
// delivery failures propagate so the queue's retry and poison policy
// applies.
type Dispatcher struct {
	sender Sender
	logger *logger.Logger
}

// NewDispatcher creates a dispatcher. sender may be nil when gateway
// credentials are not configured; messages are then skipped with a log
// instead of failing, since notification is an optional capability.
func NewDispatcher(sender Sender, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		logger: log,
	}
}

// HandleMessage processes one queued notification message.
func (d *Dispatcher) HandleMessage(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var msg models.NotificationMessage
	if err := messaging.ParseMessage(body, &msg); err != nil {
		// A payload that never parses would retry forever; drop it.
		d.logger.Error("message_parsing_failed", "Failed to parse notification message, dropping", requestID, err, nil)
		return nil
	}

	if d.sender == nil {
		d.logger.Warn("notification_skipped", "Notification hub credentials missing, skipping delivery", requestID, map[string]interface{}{
			"order_number": msg.OrderNumber,
		})
		return nil
	}

	message := msg.Message
	if message == "" {
		message = fmt.Sprintf("Your order %s is being prepared.", msg.OrderNumber)
	}
	status := msg.Status
	if status == "" {
		status = string(models.StatusPreparing)
	}

	data := &hub.NotificationData{
		Message:      message,
		OrderID:      msg.OrderID,
		OrderNumber:  msg.OrderNumber,
		Status:       status,
		Area:         msg.Area,
		CustomerName: msg.CustomerName,
	}

	if err := d.sender.Send(ctx, data); err != nil {
		d.logger.Error("notification_send_failed", "Failed to send notification", requestID, err, map[string]interface{}{
			"order_number": msg.OrderNumber,
		})
		return fmt.Errorf("failed to send notification for order %s: %w", msg.OrderNumber, err)
	}

	d.logger.Info("notification_sent", fmt.Sprintf("Notification sent for order %s", msg.OrderNumber), requestID, map[string]interface{}{
		"order_number": msg.OrderNumber,
		"area":         msg.Area,
	})

	return nil
}
