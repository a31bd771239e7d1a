package order

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"food-delivery/internal/logger"
	"food-delivery/internal/models"
	"food-delivery/internal/web"
)

func newTestRouter(svc *Service) http.Handler {
	h := NewHandler(svc, nil, logger.New("test"))
	r := chi.NewRouter()
	r.Use(web.CORS)
	h.RegisterRoutes(r)
	return r
}

func submitBody() string {
	return `{"customerName":"Ann","deliveryAddress":"1 Main St","area":"Central","meals":[{"mealId":"m1","quantity":2}]}`
}

func TestSubmitOrderHandler_Created(t *testing.T) {
	catalog := &fakeCatalog{items: map[string][]models.CatalogItem{
		"m1": {testCatalogItem("m1", "r1", "10.00", 15)},
	}}
	svc := newTestService(catalog, &fakeOrderStore{}, &fakeSink{}, &fakeQueue{})
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(submitBody()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}

	var resp models.SubmitOrderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.OrderNumber == "" || resp.OrderID == "" {
		t.Error("response missing order identifiers")
	}
	if resp.EstimatedDeliveryTime != 60 {
		t.Errorf("estimatedDeliveryTime = %d, want 60", resp.EstimatedDeliveryTime)
	}
}

func TestSubmitOrderHandler_ValidationFailure(t *testing.T) {
	sink := &fakeSink{}
	svc := newTestService(&fakeCatalog{}, &fakeOrderStore{}, sink, &fakeQueue{})
	router := newTestRouter(svc)

	body := `{"customerName":"Ann","deliveryAddress":"1 Main St","area":"Central","meals":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Meals must be a non-empty array") {
		t.Errorf("body = %s", rec.Body.String())
	}
	if len(sink.records) != 1 {
		t.Errorf("expected one invalid-order record, got %d", len(sink.records))
	}
}

func TestSubmitOrderHandler_InvalidJSON(t *testing.T) {
	sink := &fakeSink{}
	svc := newTestService(&fakeCatalog{}, &fakeOrderStore{}, sink, &fakeQueue{})
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid JSON format") {
		t.Errorf("body = %s", rec.Body.String())
	}
	if len(sink.records) != 1 {
		t.Errorf("expected one invalid-order record, got %d", len(sink.records))
	}
}

func TestSubmitOrderHandler_MealsNotAnArray(t *testing.T) {
	sink := &fakeSink{}
	svc := newTestService(&fakeCatalog{}, &fakeOrderStore{}, sink, &fakeQueue{})
	router := newTestRouter(svc)

	body := `{"customerName":"Ann","deliveryAddress":"1 Main St","area":"Central","meals":"m1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Meals must be a non-empty array") {
		t.Errorf("body = %s", rec.Body.String())
	}
	if len(sink.records) != 1 {
		t.Errorf("expected one invalid-order record, got %d", len(sink.records))
	}
}

func TestSubmitOrderHandler_Preflight(t *testing.T) {
	svc := newTestService(&fakeCatalog{}, &fakeOrderStore{}, &fakeSink{}, &fakeQueue{})
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("preflight status = %d, want 200", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("preflight body should be empty, got %s", rec.Body.String())
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS allow-origin header")
	}
}

func TestListOrdersHandler(t *testing.T) {
	catalog := &fakeCatalog{items: map[string][]models.CatalogItem{
		"m1": {testCatalogItem("m1", "r1", "10.00", 15)},
	}}
	store := &fakeOrderStore{}
	svc := newTestService(catalog, store, &fakeSink{}, &fakeQueue{})
	router := newTestRouter(svc)

	// Seed one order through the pipeline.
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(submitBody()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("setup submit failed with status %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Count  int            `json:"count"`
		Orders []models.Order `json:"orders"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 || len(resp.Orders) != 1 {
		t.Errorf("expected one order in listing, got count=%d", resp.Count)
	}
}

func TestHealthCheckHandler(t *testing.T) {
	svc := newTestService(&fakeCatalog{}, &fakeOrderStore{}, &fakeSink{}, &fakeQueue{})
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}
