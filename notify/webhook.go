package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultWebhookTimeout bounds a single webhook delivery.
const defaultWebhookTimeout = 10 * time.Second

// WebhookChannel POSTs escalation messages as JSON to an HTTP endpoint
// (chat integrations, ticketing systems). Transport-level concerns like
// signatures belong to the receiving collaborator, not this channel.
type WebhookChannel struct {
	name       string
	url        string
	httpClient *http.Client
}

// NewWebhookChannel creates a webhook channel. A nil client gets a default
// with a 10s timeout.
func NewWebhookChannel(name, url string, client *http.Client) *WebhookChannel {
	if client == nil {
		client = &http.Client{Timeout: defaultWebhookTimeout}
	}
	return &WebhookChannel{name: name, url: url, httpClient: client}
}

// Name returns the channel's registry key.
func (c *WebhookChannel) Name() string { return c.name }

// Send delivers the message and treats any non-2xx response as failure.
func (c *WebhookChannel) Send(ctx context.Context, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("webhook channel %q: marshal message: %w", c.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("webhook channel %q: build request: %w", c.name, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook channel %q: %w", c.name, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook channel %q: HTTP %d: %s", c.name, resp.StatusCode, resp.Status)
	}
	return nil
}
