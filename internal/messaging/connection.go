package messaging

import (
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"food-delivery/internal/config"
	"food-delivery/internal/logger"
)

// Queue and exchange names for the delayed notification channel.
const (
	NotificationsExchange = "order.notifications"

	DelayQueue  = "order.notifications.delay"
	ReadyQueue  = "order.notifications.ready"
	PoisonQueue = "order.notifications.poison"

	delayRoutingKey  = "delay"
	readyRoutingKey  = "ready"
	poisonRoutingKey = "poison"
)

// Connection wraps a RabbitMQ connection with reconnection logic.
type Connection struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	logger  *logger.Logger
	url     string
}

// New creates a new RabbitMQ connection and declares the notification topology.
func New(cfg *config.Config, log *logger.Logger) (*Connection, error) {
	conn := &Connection{
		logger: log,
		url:    cfg.RabbitMQURL(),
	}

	if err := conn.connect(); err != nil {
		return nil, fmt.Errorf("failed to establish initial connection: %w", err)
	}

	return conn, nil
}

// connect establishes a connection to RabbitMQ with retry logic.
func (c *Connection) connect() error {
	maxRetries := 5
	var err error

	for i := 0; i < maxRetries; i++ {
		c.conn, err = amqp091.Dial(c.url)
		if err == nil {
			c.channel, err = c.conn.Channel()
			if err == nil {
				if setupErr := c.setupTopology(); setupErr != nil {
					c.logger.Error("rabbitmq_setup_failed", "Failed to set up topology", "startup", setupErr, nil)
					c.close()
					err = setupErr
				} else {
					return nil
				}
			} else {
				c.conn.Close()
			}
		}

		if i < maxRetries-1 {
			waitTime := time.Duration(i+1) * 2 * time.Second
			c.logger.Error("rabbitmq_connection_failed",
				fmt.Sprintf("Failed to connect to RabbitMQ, retrying in %v", waitTime),
				"startup", err, nil)
			time.Sleep(waitTime)
		}
	}

	return fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", maxRetries, err)
}

// setupTopology declares the delayed notification exchange and queues.
//
// The delay queue has no consumer: messages sit there until their
// per-message TTL expires, at which point the dead-letter exchange routes
// them to the ready queue. The poison queue receives messages that have
// exhausted their retry budget.
func (c *Connection) setupTopology() error {
	err := c.channel.ExchangeDeclare(
		NotificationsExchange, // name
		"direct",              // type
		true,                  // durable
		false,                 // auto-deleted
		false,                 // internal
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s exchange: %w", NotificationsExchange, err)
	}

	queues := []struct {
		name       string
		routingKey string
		args       amqp091.Table
	}{
		{DelayQueue, delayRoutingKey, amqp091.Table{
			"x-dead-letter-exchange":    NotificationsExchange,
			"x-dead-letter-routing-key": readyRoutingKey,
		}},
		{ReadyQueue, readyRoutingKey, nil},
		{PoisonQueue, poisonRoutingKey, nil},
	}

	for _, q := range queues {
		_, err = c.channel.QueueDeclare(
			q.name, // name
			true,   // durable
			false,  // delete when unused
			false,  // exclusive
			false,  // no-wait
			q.args, // arguments
		)
		if err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", q.name, err)
		}

		err = c.channel.QueueBind(
			q.name,                // queue name
			q.routingKey,          // routing key
			NotificationsExchange, // exchange
			false,                 // no-wait
			nil,                   // arguments
		)
		if err != nil {
			return fmt.Errorf("failed to bind queue %s: %w", q.name, err)
		}
	}

	return nil
}

// Channel returns the current channel.
func (c *Connection) Channel() *amqp091.Channel {
	return c.channel
}

// Close closes the connection.
func (c *Connection) Close() error {
	return c.close()
}

func (c *Connection) close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsClosed checks if the connection is closed.
func (c *Connection) IsClosed() bool {
	return c.conn == nil || c.conn.IsClosed()
}

// Reconnect attempts to reconnect to RabbitMQ.
func (c *Connection) Reconnect() error {
	c.close()
	return c.connect()
}
