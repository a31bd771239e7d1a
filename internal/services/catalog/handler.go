package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"food-delivery/internal/logger"
	"food-delivery/internal/models"
	"food-delivery/internal/web"
)

// Handler handles HTTP requests for the catalog service.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new catalog handler.
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// RegisterRoutes mounts the catalog endpoints on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/meals", h.ListMeals)
	r.Post("/api/meals", h.RegisterMeal)
}

// ListMeals handles GET /api/meals?area=X.
func (h *Handler) ListMeals(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	area := r.URL.Query().Get("area")
	if area == "" {
		web.WriteError(w, http.StatusBadRequest, "Please provide an 'area' parameter")
		return
	}

	meals, err := h.service.ListByArea(r.Context(), area, requestID)
	if err != nil {
		h.logger.Error("meal_listing_failed", "Failed to list meals", requestID, err, map[string]interface{}{
			"area": area,
		})
		web.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"area":   area,
		"count":  len(meals),
		"meals":  meals,
	})
}

// RegisterMeal handles POST /api/meals.
func (h *Handler) RegisterMeal(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	var req models.RegisterMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if missing := missingMealFields(&req); len(missing) > 0 {
		web.WriteError(w, http.StatusBadRequest,
			fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")))
		return
	}

	mealID, err := h.service.Register(r.Context(), &req, requestID)
	if err != nil {
		h.logger.Error("meal_registration_failed", "Failed to register meal", requestID, err, map[string]interface{}{
			"name": req.Name,
		})
		web.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	web.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Meal registered successfully",
		"mealId":  mealID,
	})
}

func missingMealFields(req *models.RegisterMealRequest) []string {
	var missing []string
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if req.Description == "" {
		missing = append(missing, "description")
	}
	if req.Price.IsZero() {
		missing = append(missing, "price")
	}
	if req.PreparationMinutes == 0 {
		missing = append(missing, "preparationTime")
	}
	if len(req.DeliveryAreas) == 0 {
		missing = append(missing, "deliveryAreas")
	}
	if req.RestaurantName == "" {
		missing = append(missing, "restaurantName")
	}
	return missing
}
