package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PGSQL_URL", "postgres://localhost/gifts")
	t.Setenv("BULK_ACTION_MAX_GIFTS", "")
	t.Setenv("NOTIFICATION_TIMEOUT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/gifts", cfg.DatabaseURL)
	assert.Equal(t, 500, cfg.BulkActionMaxGifts)
	assert.Equal(t, 10*time.Second, cfg.NotificationTimeout)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BULK_ACTION_MAX_GIFTS", "25")
	t.Setenv("BULK_ACTION_RATE_LIMIT", "5-S")
	t.Setenv("NOTIFICATION_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 25, cfg.BulkActionMaxGifts)
	assert.Equal(t, "5-S", cfg.BulkActionRateLimit)
	assert.Equal(t, 3*time.Second, cfg.NotificationTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_InvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("NOTIFICATION_TIMEOUT", "soon")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.NotificationTimeout)
}
