package order

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"food-delivery/internal/logger"
	"food-delivery/internal/models"
	"food-delivery/internal/web"
)

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Handler handles HTTP requests for the order service.
type Handler struct {
	service *Service
	health  HealthChecker
	logger  *logger.Logger
}

// NewHandler creates a new order handler. health may be nil when no
// dependency check is wired.
func NewHandler(service *Service, health HealthChecker, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		health:  health,
		logger:  log,
	}
}

// RegisterRoutes mounts the order endpoints on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/orders", h.SubmitOrder)
	r.Get("/api/orders", h.ListOrders)
	r.Get("/health", h.HealthCheck)
}

// SubmitOrder handles POST /api/orders.
func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	var req models.OrderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) || typeErr.Field != "meals" {
			h.logger.Error("validation_failed", "Failed to parse request body", requestID, err, nil)
			h.service.RecordRejected(r.Context(), "Invalid JSON format", body, requestID)
			web.WriteError(w, http.StatusBadRequest, "Invalid JSON format")
			return
		}
		// A meals value that is not an array still decodes the other
		// fields; with Meals nil, validation reports it as an empty
		// meals array rather than a parse failure.
		req.Meals = nil
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	response, err := h.service.SubmitOrder(ctx, &req, body, requestID)
	if err != nil {
		var validationErr ValidationError
		if errors.As(err, &validationErr) {
			h.logger.Warn("validation_failed", "Order submission rejected", requestID, map[string]interface{}{
				"reason": validationErr.Message,
			})
			web.WriteError(w, http.StatusBadRequest, validationErr.Message)
			return
		}

		h.logger.Error("order_creation_failed", "Failed to create order", requestID, err, map[string]interface{}{
			"customer_name": req.CustomerName,
			"area":          req.Area,
		})
		web.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	web.WriteJSON(w, http.StatusCreated, response)
}

// ListOrders handles GET /api/orders.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		h.logger.Error("order_listing_failed", "Failed to list orders", requestID, err, nil)
		web.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"count":  len(orders),
		"orders": orders,
	})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	healthy := true
	if h.health != nil {
		healthy = h.health.Ping(ctx) == nil
	}

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "order-service",
		"healthy":   healthy,
	}

	statusCode := http.StatusOK
	if !healthy {
		statusCode = http.StatusServiceUnavailable
		response["status"] = "unhealthy"
	}

	web.WriteJSON(w, statusCode, response)
}
