package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	PublicBaseURL   string
	AllowedOrigins  string
	ShutdownTimeout time.Duration
	GatewayTimeout  time.Duration

	// Card processor credentials.
	CardAPIBaseURL     string
	CardSecretKey      string
	CardPublishableKey string
	CardWebhookSecret  string

	// Direct Pix provider credentials.
	PixAPIBaseURL    string
	PixAPIToken      string
	PixWebhookSecret string

	// Redirect-style Pix provider: default checkout base URL and webhook secret.
	PixRedirectBaseURL   string
	PixRedirectSecret    string
	WebhookAllowUnsigned bool

	// Fraud screening collaborator. Disabled when the URL is empty.
	FraudScreeningURL    string
	FraudScreeningSecret string
	FraudMinScore        float64

	// Delivery automation webhook fired after paid transitions.
	DeliveryWebhookURL string
}

const (
	defaultRunAddress      = ":8080"
	defaultAllowedOrigins  = "*"
	defaultShutdownTimeout = 10 * time.Second
	defaultGatewayTimeout  = 5 * time.Second
	defaultFraudMinScore   = 0.5
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		PublicBaseURL:        getString(lookup, "PUBLIC_BASE_URL", ""),
		AllowedOrigins:       getString(lookup, "ALLOWED_ORIGINS", defaultAllowedOrigins),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		GatewayTimeout:       getDuration(lookup, "GATEWAY_TIMEOUT", defaultGatewayTimeout),
		CardAPIBaseURL:       getString(lookup, "CARD_API_BASE_URL", ""),
		CardSecretKey:        getString(lookup, "CARD_SECRET_KEY", ""),
		CardPublishableKey:   getString(lookup, "CARD_PUBLISHABLE_KEY", ""),
		CardWebhookSecret:    getString(lookup, "CARD_WEBHOOK_SECRET", ""),
		PixAPIBaseURL:        getString(lookup, "PIX_API_BASE_URL", ""),
		PixAPIToken:          getString(lookup, "PIX_API_TOKEN", ""),
		PixWebhookSecret:     getString(lookup, "PIX_WEBHOOK_SECRET", ""),
		PixRedirectBaseURL:   getString(lookup, "PIX_REDIRECT_BASE_URL", ""),
		PixRedirectSecret:    getString(lookup, "PIX_REDIRECT_WEBHOOK_SECRET", ""),
		WebhookAllowUnsigned: getBool(lookup, "WEBHOOK_ALLOW_UNSIGNED", true),
		FraudScreeningURL:    getString(lookup, "FRAUD_SCREENING_URL", ""),
		FraudScreeningSecret: getString(lookup, "FRAUD_SCREENING_SECRET", ""),
		FraudMinScore:        getFloat(lookup, "FRAUD_MIN_SCORE", defaultFraudMinScore),
		DeliveryWebhookURL:   getString(lookup, "DELIVERY_WEBHOOK_URL", ""),
	}

	fs := flag.NewFlagSet("sharkpay", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		gatewayTimeoutStr  = cfg.GatewayTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.PublicBaseURL, "public-base-url", cfg.PublicBaseURL, "Externally reachable base URL for webhook callbacks")
	fs.StringVar(&cfg.AllowedOrigins, "allowed-origins", cfg.AllowedOrigins, "Comma-separated CORS origins for the checkout widget")
	fs.StringVar(&cfg.DeliveryWebhookURL, "delivery-webhook", cfg.DeliveryWebhookURL, "Delivery automation webhook URL")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&gatewayTimeoutStr, "gateway-timeout", gatewayTimeoutStr, "Outbound provider call timeout")
	fs.BoolVar(&cfg.WebhookAllowUnsigned, "webhook-allow-unsigned", cfg.WebhookAllowUnsigned, "Accept webhooks from providers without a configured signing secret")
	fs.Float64Var(&cfg.FraudMinScore, "fraud-min-score", cfg.FraudMinScore, "Minimum screening score required to proceed with checkout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.GatewayTimeout, err = time.ParseDuration(gatewayTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid gateway timeout: %w", err)
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = defaultGatewayTimeout
	}

	if cfg.FraudMinScore < 0 || cfg.FraudMinScore > 1 {
		return nil, fmt.Errorf("fraud min score must be within [0,1], got %v", cfg.FraudMinScore)
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
