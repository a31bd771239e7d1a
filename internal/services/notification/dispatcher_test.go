package notification

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"food-delivery/internal/hub"
	"food-delivery/internal/logger"
	"food-delivery/internal/models"
)

type fakeSender struct {
	sent []*hub.NotificationData
	err  error
}

func (f *fakeSender) Send(_ context.Context, data *hub.NotificationData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

func notificationBody(t *testing.T, msg *models.NotificationMessage) []byte {
	t.Helper()
	body, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("failed to marshal message: %v", err)
	}
	return body
}

func TestHandleMessage_DeliversNotification(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(sender, logger.New("test"))

	msg := &models.NotificationMessage{
		OrderID:      "id-1",
		OrderNumber:  "ORD-20250314-A1B2C3",
		CustomerName: "Ann",
		Area:         "Central",
		Status:       "Preparing",
		Message:      "Your order ORD-20250314-A1B2C3 is being prepared.",
	}

	if err := d.HandleMessage(context.Background(), notificationBody(t, msg)); err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected one delivery, got %d", len(sender.sent))
	}
	sent := sender.sent[0]
	if sent.OrderNumber != msg.OrderNumber || sent.Status != "Preparing" || sent.Area != "Central" {
		t.Errorf("unexpected payload %+v", sent)
	}
}

func TestHandleMessage_DefaultsMessageAndStatus(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(sender, logger.New("test"))

	msg := &models.NotificationMessage{OrderNumber: "ORD-20250314-A1B2C3"}

	if err := d.HandleMessage(context.Background(), notificationBody(t, msg)); err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}

	sent := sender.sent[0]
	if sent.Message != "Your order ORD-20250314-A1B2C3 is being prepared." {
		t.Errorf("message not defaulted: %q", sent.Message)
	}
	if sent.Status != "Preparing" {
		t.Errorf("status not defaulted: %q", sent.Status)
	}
}

func TestHandleMessage_SendFailurePropagates(t *testing.T) {
	sender := &fakeSender{err: errors.New("gateway down")}
	d := NewDispatcher(sender, logger.New("test"))

	msg := &models.NotificationMessage{OrderNumber: "ORD-1"}

	if err := d.HandleMessage(context.Background(), notificationBody(t, msg)); err == nil {
		t.Fatal("expected error so the queue retry policy applies")
	}
}

func TestHandleMessage_MissingCredentialsSkipsSilently(t *testing.T) {
	d := NewDispatcher(nil, logger.New("test"))

	msg := &models.NotificationMessage{OrderNumber: "ORD-1"}

	if err := d.HandleMessage(context.Background(), notificationBody(t, msg)); err != nil {
		t.Fatalf("expected silent skip, got %v", err)
	}
}

func TestHandleMessage_MalformedPayloadDropped(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(sender, logger.New("test"))

	if err := d.HandleMessage(context.Background(), []byte(`{not json`)); err != nil {
		t.Fatalf("malformed payload must be dropped, not retried: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Error("malformed payload must not be delivered")
	}
}

func TestDispatch_AgainstGateway(t *testing.T) {
	var (
		gotAuth   string
		gotFormat string
		gotBody   map[string]hub.NotificationData
	)
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotFormat = r.Header.Get("ServiceBusNotification-Format")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer gateway.Close()

	creds := hub.Credentials{Endpoint: gateway.URL + "/", KeyName: "policy", KeyValue: "secret"}
	client := hub.NewClient(creds, "orders-hub", time.Hour)
	d := NewDispatcher(client, logger.New("test"))

	msg := &models.NotificationMessage{
		OrderID:     "id-1",
		OrderNumber: "ORD-20250314-A1B2C3",
		Area:        "Central",
	}

	if err := d.HandleMessage(context.Background(), notificationBody(t, msg)); err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}

	if !strings.HasPrefix(gotAuth, "SharedAccessSignature sr=") {
		t.Errorf("unexpected Authorization header %q", gotAuth)
	}
	if gotFormat != "template" {
		t.Errorf("format header = %q, want template", gotFormat)
	}
	if gotBody["data"].OrderNumber != msg.OrderNumber {
		t.Errorf("payload order number = %q", gotBody["data"].OrderNumber)
	}
}

func TestDispatch_GatewayRejectionPropagates(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer gateway.Close()

	creds := hub.Credentials{Endpoint: gateway.URL + "/", KeyName: "policy", KeyValue: "secret"}
	client := hub.NewClient(creds, "orders-hub", time.Hour)
	d := NewDispatcher(client, logger.New("test"))

	msg := &models.NotificationMessage{OrderNumber: "ORD-1"}

	err := d.HandleMessage(context.Background(), notificationBody(t, msg))
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	var dispatchErr hub.DispatchError
	if !errors.As(err, &dispatchErr) {
		t.Fatalf("expected DispatchError, got %T", err)
	}
	if dispatchErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", dispatchErr.StatusCode)
	}
}
