package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"food-delivery/internal/cache"
	"food-delivery/internal/config"
	"food-delivery/internal/database"
	"food-delivery/internal/hub"
	"food-delivery/internal/logger"
	"food-delivery/internal/messaging"
	"food-delivery/internal/services/catalog"
	"food-delivery/internal/services/notification"
	"food-delivery/internal/services/order"
	"food-delivery/internal/web"
)

func main() {
	var (
		mode     = flag.String("mode", "", "Service mode (order-service, notification-dispatcher, seed)")
		port     = flag.Int("port", 3000, "HTTP port")
		prefetch = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	)
	flag.Parse()

	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
		"port": *port,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "order-service":
		if err := runOrderService(ctx, cfg, log, *port); err != nil {
			log.Error("service_failed", "Order service failed", requestID, err, nil)
			os.Exit(1)
		}
	case "notification-dispatcher":
		if err := runNotificationDispatcher(ctx, cfg, log, *prefetch); err != nil {
			log.Error("service_failed", "Notification dispatcher failed", requestID, err, nil)
			os.Exit(1)
		}
	case "seed":
		if err := runSeed(ctx, cfg, log); err != nil {
			log.Error("service_failed", "Catalog seeding failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runOrderService runs the HTTP-facing order intake and catalog API.
func runOrderService(ctx context.Context, cfg *config.Config, log *logger.Logger, port int) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)

	var catalogCache cache.Cache
	if cfg.Redis.Addr != "" {
		catalogCache = cache.NewRedisCache(cfg.Redis.Addr, "order-service")
		log.Info("cache_enabled", "Catalog cache enabled", requestID, map[string]interface{}{
			"redis_addr": cfg.Redis.Addr,
		})
	}

	catalogRepo := catalog.NewRepository(db)
	catalogService := catalog.NewService(catalogRepo, catalogCache, log)
	catalogHandler := catalog.NewHandler(catalogService, log)

	orderRepo := order.NewRepository(db)
	pricing := order.NewPricingEngine(catalogRepo, log, cfg.Delivery.PickupMinutes, cfg.Delivery.TransitMinutes)
	orderService := order.NewService(pricing, orderRepo, orderRepo, publisher, log,
		time.Duration(cfg.Notification.DelaySeconds)*time.Second)
	orderHandler := order.NewHandler(orderService, db, log)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(web.CORS)
	r.Use(web.Logging(log))
	orderHandler.RegisterRoutes(r)
	catalogHandler.RegisterRoutes(r)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		log.Info("service_started", fmt.Sprintf("Order service started on port %d", port), requestID, map[string]interface{}{
			"port": port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

// runNotificationDispatcher runs the delayed notification consumer loop.
func runNotificationDispatcher(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	requestID := logger.GenerateRequestID()

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	var sender notification.Sender
	if cfg.NotificationsEnabled() {
		creds, err := hub.ParseConnectionString(cfg.Hub.ConnectionString)
		if err != nil {
			return fmt.Errorf("failed to parse notification hub credentials: %w", err)
		}
		sender = hub.NewClient(creds, cfg.Hub.HubName,
			time.Duration(cfg.Notification.TokenTTLSeconds)*time.Second)
	} else {
		log.Warn("notifications_disabled", "Notification hub credentials missing, deliveries will be skipped", requestID, nil)
	}

	dispatcher := notification.NewDispatcher(sender, log)

	publisher := messaging.NewPublisher(conn, log)
	consumer := messaging.NewConsumer(conn, publisher, log,
		messaging.ReadyQueue, "notification-dispatcher", prefetch,
		cfg.Notification.MaxAttempts,
		time.Duration(cfg.Notification.DelaySeconds)*time.Second)
	defer consumer.Close()

	if err := consumer.StartConsuming(ctx, dispatcher.HandleMessage); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// runSeed populates the catalog with sample data.
func runSeed(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return catalog.Seed(ctx, catalog.NewRepository(db), log)
}
