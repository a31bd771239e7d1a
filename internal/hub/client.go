package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const apiVersion = "2015-01"

// DispatchError indicates the gateway rejected a notification.
type DispatchError struct {
	StatusCode int
	Body       string
}

func (e DispatchError) Error() string {
	return fmt.Sprintf("notification gateway returned status %d: %s", e.StatusCode, e.Body)
}

// NotificationData is the template payload delivered to registered devices.
type NotificationData struct {
	Message      string `json:"message"`
	OrderID      string `json:"orderId"`
	OrderNumber  string `json:"orderNumber"`
	Status       string `json:"status"`
	Area         string `json:"area"`
	CustomerName string `json:"customerName"`
}

// Client sends template notifications to a notification hub over its REST API.
type Client struct {
	creds      Credentials
	hubName    string
	tokenTTL   time.Duration
	httpClient *http.Client
}

// NewClient creates a gateway client with a bounded request timeout so a
// stalled gateway cannot exhaust dispatcher capacity.
func NewClient(creds Credentials, hubName string, tokenTTL time.Duration) *Client {
	return &Client{
		creds:    creds,
		hubName:  hubName,
		tokenTTL: tokenTTL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Send delivers one template notification. Non-2xx responses and network
// failures are returned as errors so the queue's retry policy applies;
// the client itself never retries.
func (c *Client) Send(ctx context.Context, data *NotificationData) error {
	targetURI, token := BuildToken(c.creds, c.hubName, c.tokenTTL)
	requestURL := targetURI + "/?api-version=" + apiVersion

	body, err := json.Marshal(map[string]interface{}{"data": data})
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json;charset=utf-8")
	req.Header.Set("Authorization", token)
	req.Header.Set("ServiceBusNotification-Format", "template")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return DispatchError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return nil
}
