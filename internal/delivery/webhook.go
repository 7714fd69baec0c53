// Package delivery submits finished email requests to external sinks.
package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/hal9000y/mail-agent/internal/agent"
)

const apiKeyHeader = "X-N8N-API-KEY"

// webhookPayload is the wire shape the n8n workflow expects. TemplateID
// is serialized as null when absent.
type webhookPayload struct {
	Recipient  string  `json:"recipient"`
	Subject    string  `json:"subject"`
	Content    string  `json:"content"`
	TemplateID *string `json:"template_id"`
}

// Webhook delivers email requests to an n8n workflow-automation
// webhook. One synchronous POST per request, no retries.
type Webhook struct {
	url    string
	apiKey string
	client *http.Client
}

// WebhookOption configures a Webhook.
type WebhookOption func(*Webhook)

// WithWebhookHTTPClient overrides the HTTP client. Used in tests.
func WithWebhookHTTPClient(c *http.Client) WebhookOption {
	return func(w *Webhook) { w.client = c }
}

// NewWebhook creates a delivery client for the given endpoint
// authenticated by apiKey.
func NewWebhook(url, apiKey string, opts ...WebhookOption) *Webhook {
	w := &Webhook{
		url:    url,
		apiKey: apiKey,
		client: http.DefaultClient,
	}
	for _, o := range opts {
		o(w)
	}

	return w
}

// Send posts req to the configured webhook. Only HTTP 200 counts as
// success; every other status and any transport failure is logged with
// full diagnostics and returned as an error.
func (w *Webhook) Send(ctx context.Context, req *agent.EmailRequest) error {
	payload := webhookPayload{
		Recipient:  req.Recipient,
		Subject:    req.Subject,
		Content:    req.Body,
		TemplateID: req.TemplateID,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("json.Marshal failed: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext failed: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(apiKeyHeader, w.apiKey)

	log.Printf("sending email request to webhook: %s", w.url)

	resp, err := w.client.Do(httpReq)
	if err != nil {
		err = fmt.Errorf("webhook request failed: %w", err)
		log.Println(err)
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Printf("webhook delivery failed: status=%d body=%q url=%s", resp.StatusCode, respBody, w.url)
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
