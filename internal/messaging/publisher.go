package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"food-delivery/internal/logger"
)

// attemptsHeader counts delivery attempts across redeliveries.
const attemptsHeader = "x-delivery-attempts"

// Publisher handles message publishing to the notification exchange.
type Publisher struct {
	conn   *Connection
	logger *logger.Logger
}

// NewPublisher creates a new message publisher.
func NewPublisher(conn *Connection, log *logger.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: log,
	}
}

// PublishDelayed submits a message that stays invisible to consumers until
// the delay elapses. The message is published to the delay queue with a
// per-message TTL; expiry dead-letters it into the ready queue.
func (p *Publisher) PublishDelayed(ctx context.Context, message interface{}, delay time.Duration) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	return p.publish(ctx, delayRoutingKey, body, delay, amqp091.Table{attemptsHeader: int32(1)})
}

// Requeue sends a previously consumed message body back through the delay
// queue with an incremented attempt counter.
func (p *Publisher) Requeue(ctx context.Context, body []byte, attempts int, delay time.Duration) error {
	return p.publish(ctx, delayRoutingKey, body, delay, amqp091.Table{attemptsHeader: int32(attempts)})
}

// PublishPoison routes a message that exhausted its retry budget to the
// poison queue, preserving its headers for inspection.
func (p *Publisher) PublishPoison(ctx context.Context, body []byte, headers amqp091.Table) error {
	return p.publishRaw(ctx, poisonRoutingKey, amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
		Headers:      headers,
	})
}

func (p *Publisher) publish(ctx context.Context, routingKey string, body []byte, delay time.Duration, headers amqp091.Table) error {
	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
		Headers:      headers,
	}
	if delay > 0 {
		publishing.Expiration = strconv.FormatInt(delay.Milliseconds(), 10)
	}
	return p.publishRaw(ctx, routingKey, publishing)
}

func (p *Publisher) publishRaw(ctx context.Context, routingKey string, publishing amqp091.Publishing) error {
	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err := p.conn.Channel().PublishWithContext(
		ctx,
		NotificationsExchange, // exchange
		routingKey,            // routing key
		false,                 // mandatory
		false,                 // immediate
		publishing,
	)
	if err != nil {
		p.logger.Error("message_publish_failed",
			fmt.Sprintf("Failed to publish message with routing key %s", routingKey),
			"", err, map[string]interface{}{
				"routing_key": routingKey,
			})
		return fmt.Errorf("failed to publish message: %w", err)
	}

	p.logger.Debug("message_published",
		fmt.Sprintf("Published message with routing key %s", routingKey),
		"", map[string]interface{}{
			"routing_key":  routingKey,
			"message_size": len(publishing.Body),
			"expiration":   publishing.Expiration,
		})

	return nil
}

// Close closes the publisher.
func (p *Publisher) Close() error {
	return p.conn.Close()
}
