package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv               string
	Port                 string
	StripeSecretKey      string
	StripePublishableKey string
	StripeAccountID      string
	CurrencyCode         string
	CORSAllowedOrigins   []string
	WebDir               string
	BodyLimitBytes       int64
	RateLimitWindow      time.Duration
	RateLimitMax         int
	SecurityHeaders      bool
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:               valueOrDefault(k.String("APP_ENV"), "development"),
		Port:                 valueOrDefault(k.String("PORT"), "4242"),
		StripeSecretKey:      strings.TrimSpace(k.String("STRIPE_SECRET_KEY")),
		StripePublishableKey: strings.TrimSpace(k.String("STRIPE_PUBLISHABLE_KEY")),
		StripeAccountID:      strings.TrimSpace(k.String("STRIPE_ACCOUNT_ID")),
		CurrencyCode:         strings.ToLower(valueOrDefault(k.String("CURRENCY_CODE"), "eur")),
		CORSAllowedOrigins:   splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		WebDir:               valueOrDefault(k.String("WEB_DIR"), "web"),
		BodyLimitBytes:       parseInt64(k.String("HTTP_BODY_LIMIT_BYTES"), 1<<16),
		RateLimitWindow:      parseDuration(k.String("RATE_LIMIT_WINDOW"), "1m"),
		RateLimitMax:         int(parseInt64(k.String("RATE_LIMIT_MAX"), 60)),
		SecurityHeaders:      parseBool(valueOrDefault(k.String("SECURITY_HEADERS"), "true")),
	}

	if cfg.StripeSecretKey == "" {
		return nil, errors.New("STRIPE_SECRET_KEY is required")
	}
	if cfg.StripePublishableKey == "" {
		return nil, errors.New("STRIPE_PUBLISHABLE_KEY is required")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "4242"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseInt64(value string, fallback int64) int64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
