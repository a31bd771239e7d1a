package order

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"food-delivery/internal/logger"
	"food-delivery/internal/models"
)

// OrderStore appends finalized order records.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	List(ctx context.Context) ([]models.Order, error)
}

// InvalidOrderSink records rejected submissions for offline inspection.
type InvalidOrderSink interface {
	Append(ctx context.Context, rec *models.InvalidOrderRecord) error
}

// NotificationQueue submits messages that become visible after a delay.
type NotificationQueue interface {
	PublishDelayed(ctx context.Context, message interface{}, delay time.Duration) error
}

// Service is the order intake controller: it validates a submission,
// prices it against the catalog, persists the order and schedules the
// delayed "being prepared" notification.
type Service struct {
	pricing *PricingEngine
	orders  OrderStore
	invalid InvalidOrderSink
	queue   NotificationQueue
	logger  *logger.Logger
	delay   time.Duration
}

// NewService creates the intake controller. delay is the notification
// visibility delay applied to every enqueued message.
func NewService(pricing *PricingEngine, orders OrderStore, invalid InvalidOrderSink,
	queue NotificationQueue, log *logger.Logger, delay time.Duration) *Service {
	return &Service{
		pricing: pricing,
		orders:  orders,
		invalid: invalid,
		queue:   queue,
		logger:  log,
		delay:   delay,
	}
}

// SubmitOrder runs the submit pipeline for one request. rawPayload is the
// original request body, forwarded to the invalid-order sink on rejection
// so rejected traffic is never silently dropped.
//
// Persistence failure fails the request; a notification enqueue failure
// does not. Order placement must succeed independently of the
// notification subsystem's availability.
func (s *Service) SubmitOrder(ctx context.Context, req *models.OrderRequest, rawPayload json.RawMessage, requestID string) (*models.SubmitOrderResponse, error) {
	if err := ValidateOrderRequest(req); err != nil {
		s.recordInvalidOrder(ctx, err.Error(), rawPayload, requestID)
		return nil, err
	}

	pricing := s.pricing.Price(ctx, req.Meals, requestID)

	now := time.Now().UTC()
	orderID := uuid.NewString()

	order := &models.Order{
		ID:                       orderID,
		Number:                   models.GenerateOrderNumber(now, orderID),
		CustomerName:             req.CustomerName,
		DeliveryAddress:          req.DeliveryAddress,
		Area:                     req.Area,
		Phone:                    req.PhoneNumber,
		SpecialInstructions:      req.SpecialInstructions,
		Lines:                    pricing.Lines,
		TotalCost:                pricing.TotalCost,
		TotalPreparationMinutes:  pricing.TotalPreparationMinutes,
		EstimatedDeliveryMinutes: pricing.EstimatedDeliveryMinutes,
		CreatedAt:                now,
		Status:                   models.StatusPending,
		RestaurantIDs:            pricing.RestaurantIDs,
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	s.logger.Info("order_created", fmt.Sprintf("Order %s created", order.Number), requestID, map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.Number,
		"total_cost":   order.TotalCost.String(),
		"meal_count":   len(order.Lines),
	})

	s.enqueueNotification(ctx, order, requestID)

	return &models.SubmitOrderResponse{
		Status:                "success",
		Message:               "Order submitted successfully",
		OrderID:               order.ID,
		OrderNumber:           order.Number,
		TotalCost:             order.TotalCost,
		EstimatedDeliveryTime: order.EstimatedDeliveryMinutes,
		DeliveryTimeFormatted: fmt.Sprintf("%d minutes", order.EstimatedDeliveryMinutes),
		Data: models.SubmitOrderExtra{
			CustomerName: order.CustomerName,
			Area:         order.Area,
			MealCount:    len(order.Lines),
			OrderDate:    order.CreatedAt,
		},
	}, nil
}

// ListOrders returns persisted orders, newest first.
func (s *Service) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx)
}

// RecordRejected forwards a payload rejected before validation (for
// example, a body that does not parse) to the invalid-order sink.
func (s *Service) RecordRejected(ctx context.Context, reason string, payload json.RawMessage, requestID string) {
	s.recordInvalidOrder(ctx, reason, payload, requestID)
}

// recordInvalidOrder forwards a rejected payload to the invalid-order
// sink. Sink failures are logged, not surfaced: the caller still gets
// the validation error.
func (s *Service) recordInvalidOrder(ctx context.Context, reason string, payload json.RawMessage, requestID string) {
	rec := models.NewInvalidOrderRecord(reason, payload)
	if err := s.invalid.Append(ctx, rec); err != nil {
		s.logger.Error("invalid_order_record_failed", "Failed to record invalid order", requestID, err, map[string]interface{}{
			"reason": reason,
		})
		return
	}
	s.logger.Info("invalid_order_recorded", "Recorded invalid order", requestID, map[string]interface{}{
		"reason": reason,
	})
}

// enqueueNotification schedules the delayed preparing-notification.
// Failure is logged only: notification delivery is a best-effort side
// channel, never part of order placement correctness.
func (s *Service) enqueueNotification(ctx context.Context, order *models.Order, requestID string) {
	msg := models.NewNotificationMessage(order)
	if err := s.queue.PublishDelayed(ctx, msg, s.delay); err != nil {
		s.logger.Error("notification_enqueue_failed", "Failed to enqueue order notification", requestID, err, map[string]interface{}{
			"order_number": order.Number,
		})
		return
	}
	s.logger.Debug("notification_enqueued", "Enqueued delayed order notification", requestID, map[string]interface{}{
		"order_number":  order.Number,
		"delay_seconds": s.delay.Seconds(),
	})
}
