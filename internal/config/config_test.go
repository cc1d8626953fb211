package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-salon/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_PUBLISHABLE_KEY", "pk_test_123")
	t.Setenv("PORT", "")
	t.Setenv("CURRENCY_CODE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("RATE_LIMIT_WINDOW", "")
	t.Setenv("RATE_LIMIT_MAX", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, ":4242", cfg.HTTPAddr())
	require.Equal(t, "eur", cfg.CurrencyCode)
	require.Empty(t, cfg.CORSAllowedOrigins)
	require.Equal(t, time.Minute, cfg.RateLimitWindow)
	require.Equal(t, 60, cfg.RateLimitMax)
	require.True(t, cfg.SecurityHeaders)
}

func TestLoadRequiresKeys(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "")
	t.Setenv("STRIPE_PUBLISHABLE_KEY", "pk_test_123")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadParsesValues(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_PUBLISHABLE_KEY", "pk_test_123")
	t.Setenv("STRIPE_ACCOUNT_ID", "acct_42")
	t.Setenv("PORT", "8080")
	t.Setenv("CURRENCY_CODE", "USD")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_MAX", "10")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, "acct_42", cfg.StripeAccountID)
	require.Equal(t, "usd", cfg.CurrencyCode)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	require.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	require.Equal(t, 10, cfg.RateLimitMax)
}
