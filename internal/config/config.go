package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the food delivery platform.
// Values come from the environment; no process-wide singletons.
type Config struct {
	Database     DatabaseConfig
	RabbitMQ     RabbitMQConfig
	Redis        RedisConfig
	Hub          HubConfig
	Notification NotificationConfig
	Delivery     DeliveryConfig
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// RabbitMQConfig holds RabbitMQ connection configuration.
type RabbitMQConfig struct {
	Host     string
	Port     int
	User     string
	Password string
}

// RedisConfig holds the optional catalog cache configuration.
// An empty Addr disables caching.
type RedisConfig struct {
	Addr string
}

// HubConfig holds push notification gateway credentials.
// Both fields empty means notifications are disabled.
type HubConfig struct {
	ConnectionString string
	HubName          string
}

// NotificationConfig holds delayed-notification policy.
type NotificationConfig struct {
	DelaySeconds    int
	MaxAttempts     int
	TokenTTLSeconds int
}

// DeliveryConfig holds delivery time estimation policy.
type DeliveryConfig struct {
	PickupMinutes  int
	TransitMinutes int
}

// Load reads configuration from environment variables, applying defaults
// for everything except the notification hub credentials.
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     envString("DATABASE_HOST", "localhost"),
			User:     envString("DATABASE_USER", "postgres"),
			Password: envString("DATABASE_PASSWORD", "postgres"),
			Database: envString("DATABASE_NAME", "food_delivery"),
		},
		RabbitMQ: RabbitMQConfig{
			Host:     envString("RABBITMQ_HOST", "localhost"),
			User:     envString("RABBITMQ_USER", "guest"),
			Password: envString("RABBITMQ_PASSWORD", "guest"),
		},
		Redis: RedisConfig{
			Addr: envString("REDIS_ADDR", ""),
		},
		Hub: HubConfig{
			ConnectionString: envString("NOTIFICATION_HUB_CONNECTION_STRING", ""),
			HubName:          envString("NOTIFICATION_HUB_NAME", ""),
		},
	}

	var err error
	if cfg.Database.Port, err = envInt("DATABASE_PORT", 5432); err != nil {
		return nil, err
	}
	if cfg.RabbitMQ.Port, err = envInt("RABBITMQ_PORT", 5672); err != nil {
		return nil, err
	}
	if cfg.Notification.DelaySeconds, err = envInt("NOTIFICATION_DELAY_SECONDS", 15); err != nil {
		return nil, err
	}
	if cfg.Notification.MaxAttempts, err = envInt("NOTIFICATION_MAX_ATTEMPTS", 3); err != nil {
		return nil, err
	}
	if cfg.Notification.TokenTTLSeconds, err = envInt("NOTIFICATION_TOKEN_TTL_SECONDS", 3600); err != nil {
		return nil, err
	}
	if cfg.Delivery.PickupMinutes, err = envInt("DELIVERY_PICKUP_MINUTES", 10); err != nil {
		return nil, err
	}
	if cfg.Delivery.TransitMinutes, err = envInt("DELIVERY_TRANSIT_MINUTES", 20); err != nil {
		return nil, err
	}

	return cfg, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return n, nil
}

// DatabaseURL returns a PostgreSQL connection URL.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Database)
}

// RabbitMQURL returns an AMQP connection URL.
func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}

// NotificationsEnabled reports whether push notification credentials are configured.
func (c *Config) NotificationsEnabled() bool {
	return c.Hub.ConnectionString != "" && c.Hub.HubName != ""
}
