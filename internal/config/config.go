// Package config loads process configuration from environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Delivery provider identifiers accepted in DELIVERY_PROVIDER.
const (
	ProviderWebhook = "webhook"
	ProviderGmail   = "gmail"
)

// DefaultGeminiModel is used when GEMINI_MODEL is not set.
const DefaultGeminiModel = "gemini-1.5-flash"

// Config holds all process-wide settings. It is read once at startup
// and treated as immutable for the process lifetime.
type Config struct {
	// WebhookURL is the n8n workflow endpoint that performs delivery.
	WebhookURL string
	// WebhookAPIKey is sent as the X-N8N-API-KEY header on every call.
	WebhookAPIKey string

	// GeminiAPIKey authenticates against the Generative Language API.
	GeminiAPIKey string
	// GeminiModel selects the generation model.
	GeminiModel string

	// DeliveryProvider selects the delivery sink: "webhook" or "gmail".
	DeliveryProvider string

	// OAuthClientID and OAuthClientSecret are the Google OAuth2 client
	// credentials, required only for the gmail provider.
	OAuthClientID     string
	OAuthClientSecret string
	// GmailFrom is the From address for gmail delivery.
	GmailFrom string
}

// Load reads configuration from the environment, optionally loading an
// env file first. envFile may be empty to skip file loading.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("godotenv.Load failed: %w", err)
		}
	}

	cfg := &Config{
		WebhookURL:        os.Getenv("N8N_WEBHOOK_URL"),
		WebhookAPIKey:     os.Getenv("N8N_API_KEY"),
		GeminiAPIKey:      os.Getenv("GOOGLE_API_KEY"),
		GeminiModel:       os.Getenv("GEMINI_MODEL"),
		DeliveryProvider:  os.Getenv("DELIVERY_PROVIDER"),
		OAuthClientID:     os.Getenv("OAUTH_GOOGLE_CLIENT_ID"),
		OAuthClientSecret: os.Getenv("OAUTH_GOOGLE_CLIENT_SECRET"),
		GmailFrom:         os.Getenv("GMAIL_FROM"),
	}

	if cfg.GeminiModel == "" {
		cfg.GeminiModel = DefaultGeminiModel
	}
	if cfg.DeliveryProvider == "" {
		cfg.DeliveryProvider = ProviderWebhook
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is complete. It returns an
// error describing the first problem found.
func (c *Config) Validate() error {
	if c.WebhookURL == "" {
		return fmt.Errorf("N8N_WEBHOOK_URL must be set")
	}
	if c.WebhookAPIKey == "" {
		return fmt.Errorf("N8N_API_KEY must be set")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GOOGLE_API_KEY must be set")
	}

	switch c.DeliveryProvider {
	case ProviderWebhook:
	case ProviderGmail:
		if c.OAuthClientID == "" || c.OAuthClientSecret == "" {
			return fmt.Errorf("OAUTH_GOOGLE_CLIENT_ID and OAUTH_GOOGLE_CLIENT_SECRET must be set for the gmail provider")
		}
		if c.GmailFrom == "" {
			return fmt.Errorf("GMAIL_FROM must be set for the gmail provider")
		}
	default:
		return fmt.Errorf("unknown DELIVERY_PROVIDER %q (valid: webhook, gmail)", c.DeliveryProvider)
	}

	return nil
}
