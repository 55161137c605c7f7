package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/chainsafe/usdt-payout-verifier/internal/metrics"
)

const defaultWebhookTimeout = 10 * time.Second

// WebhookNotifier POSTs events as JSON to an operator endpoint
type WebhookNotifier struct {
	client *resty.Client
	url    string
}

// NewWebhookNotifier creates a WebhookNotifier. A non-empty token is sent as a
// bearer token.
func NewWebhookNotifier(url, token string, timeout time.Duration) *WebhookNotifier {
	if timeout <= 0 {
		timeout = defaultWebhookTimeout
	}
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	if token != "" {
		client.SetAuthToken(token)
	}
	return &WebhookNotifier{client: client, url: url}
}

// Notify delivers event. Any non-2xx response is an error.
func (w *WebhookNotifier) Notify(ctx context.Context, event Event) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetBody(event).
		Post(w.url)
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues("webhook", "error").Inc()
		return fmt.Errorf("webhook %s: %w", event.Kind, err)
	}
	if resp.IsError() {
		metrics.NotificationsTotal.WithLabelValues("webhook", "error").Inc()
		return fmt.Errorf("webhook %s: unexpected status %d", event.Kind, resp.StatusCode())
	}
	metrics.NotificationsTotal.WithLabelValues("webhook", "sent").Inc()
	return nil
}
