package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"food-delivery/internal/logger"
)

// MessageHandler processes one queued message body.
type MessageHandler func(ctx context.Context, body []byte) error

// RetryPublisher routes failed deliveries: back through the delay queue
// while the retry budget lasts, to the poison queue once it is spent.
type RetryPublisher interface {
	Requeue(ctx context.Context, body []byte, attempts int, delay time.Duration) error
	PublishPoison(ctx context.Context, body []byte, headers amqp091.Table) error
}

// Consumer consumes ready notification messages with at-least-once
// delivery. A message whose handler fails is sent back through the delay
// queue; once it exceeds maxAttempts it is moved to the poison queue.
type Consumer struct {
	conn        *Connection
	publisher   RetryPublisher
	logger      *logger.Logger
	queueName   string
	consumerTag string
	prefetch    int
	maxAttempts int
	retryDelay  time.Duration
	nackBackoff time.Duration
}

// NewConsumer creates a consumer on the given queue.
func NewConsumer(conn *Connection, publisher RetryPublisher, log *logger.Logger,
	queueName, consumerTag string, prefetch, maxAttempts int, retryDelay time.Duration) *Consumer {
	return &Consumer{
		conn:        conn,
		publisher:   publisher,
		logger:      log,
		queueName:   queueName,
		consumerTag: consumerTag,
		prefetch:    prefetch,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		nackBackoff: time.Second,
	}
}

// StartConsuming starts consuming messages from the queue. Blocks until
// the context is cancelled or the connection is lost beyond recovery.
func (c *Consumer) StartConsuming(ctx context.Context, handler MessageHandler) error {
	if c.conn.IsClosed() {
		if err := c.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	err := c.conn.Channel().Qos(
		c.prefetch, // prefetch count
		0,          // prefetch size
		false,      // global
	)
	if err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := c.conn.Channel().Consume(
		c.queueName,   // queue
		c.consumerTag, // consumer
		false,         // auto-ack (we ack manually)
		false,         // exclusive
		false,         // no-local
		false,         // no-wait
		nil,           // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("consumer_started",
		fmt.Sprintf("Started consuming from queue %s", c.queueName),
		"", map[string]interface{}{
			"queue":    c.queueName,
			"consumer": c.consumerTag,
			"prefetch": c.prefetch,
		})

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("consumer_stopped", "Consumer stopped by context", "", nil)
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				c.logger.Error("consumer_channel_closed", "Message channel closed, attempting to reconnect", "", nil, nil)
				if err := c.conn.Reconnect(); err != nil {
					return fmt.Errorf("failed to reconnect after channel closed: %w", err)
				}
				return c.StartConsuming(ctx, handler)
			}

			c.processMessage(ctx, d, handler)
		}
	}
}

// processMessage handles a single delivery: ack on success, delayed
// requeue on failure, poison queue once the retry budget is spent.
func (c *Consumer) processMessage(ctx context.Context, delivery amqp091.Delivery, handler MessageHandler) {
	startTime := time.Now()
	attempts := deliveryAttempts(delivery.Headers)

	c.logger.Debug("message_received", "Processing message", "", map[string]interface{}{
		"queue":        c.queueName,
		"message_size": len(delivery.Body),
		"delivery_tag": delivery.DeliveryTag,
		"attempt":      attempts,
	})

	processingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	err := handler(processingCtx, delivery.Body)
	duration := time.Since(startTime)

	if err == nil {
		c.logger.Debug("message_processed", "Successfully processed message", "", map[string]interface{}{
			"queue":        c.queueName,
			"duration_ms":  duration.Milliseconds(),
			"delivery_tag": delivery.DeliveryTag,
		})
		if ackErr := delivery.Ack(false); ackErr != nil {
			c.logger.Error("message_ack_failed", "Failed to ack message", "", ackErr, nil)
		}
		return
	}

	c.logger.Error("message_processing_failed", "Failed to process message", "", err, map[string]interface{}{
		"queue":        c.queueName,
		"duration_ms":  duration.Milliseconds(),
		"delivery_tag": delivery.DeliveryTag,
		"attempt":      attempts,
		"max_attempts": c.maxAttempts,
	})

	if attempts >= c.maxAttempts {
		if poisonErr := c.publisher.PublishPoison(ctx, delivery.Body, delivery.Headers); poisonErr != nil {
			c.logger.Error("message_poison_failed", "Failed to move message to poison queue", "", poisonErr, nil)
			c.nackAfterBackoff(ctx, delivery)
			return
		}
		c.logger.Error("message_poisoned",
			fmt.Sprintf("Message exceeded %d attempts, moved to poison queue", c.maxAttempts),
			"", err, map[string]interface{}{"queue": c.queueName})
	} else {
		if requeueErr := c.publisher.Requeue(ctx, delivery.Body, attempts+1, c.retryDelay); requeueErr != nil {
			c.logger.Error("message_requeue_failed", "Failed to requeue message", "", requeueErr, nil)
			c.nackAfterBackoff(ctx, delivery)
			return
		}
	}

	if ackErr := delivery.Ack(false); ackErr != nil {
		c.logger.Error("message_ack_failed", "Failed to ack message", "", ackErr, nil)
	}
}

// nackAfterBackoff returns an unpublishable delivery to the broker with
// its attempt header unchanged. The pause keeps the redelivery from
// spinning at full speed while the publisher is down.
func (c *Consumer) nackAfterBackoff(ctx context.Context, delivery amqp091.Delivery) {
	if c.nackBackoff > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(c.nackBackoff):
		}
	}
	if nackErr := delivery.Nack(false, true); nackErr != nil {
		c.logger.Error("message_nack_failed", "Failed to nack message", "", nackErr, nil)
	}
}

// deliveryAttempts reads the attempt counter header, defaulting to 1.
func deliveryAttempts(headers amqp091.Table) int {
	v, ok := headers[attemptsHeader]
	if !ok {
		return 1
	}
	switch n := v.(type) {
	case int32:
		return int(n)
	case int64:
		return int(n)
	case int:
		return n
	default:
		return 1
	}
}

// ParseMessage parses a JSON message into the provided struct.
func ParseMessage(body []byte, v interface{}) error {
	return json.Unmarshal(body, v)
}

// Close stops consuming messages.
func (c *Consumer) Close() error {
	if c.conn != nil && !c.conn.IsClosed() {
		if err := c.conn.Channel().Cancel(c.consumerTag, false); err != nil {
			c.logger.Error("consumer_cancel_failed", "Failed to cancel consumer", "", err, nil)
		}
		return c.conn.Close()
	}
	return nil
}
