package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 20, cfg.Lookup.MaxResults)
	assert.Equal(t, 2, cfg.Lookup.MinQueryLength)
	assert.Equal(t, 15*time.Minute, cfg.Lookup.CacheTTL)
	assert.Equal(t, 5, cfg.Lookup.BreakerFailures)
	assert.Equal(t, 30*time.Second, cfg.Relay.Timeout)
	assert.Empty(t, cfg.Relay.WebhookURL)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("INTAKE_SERVER_ADDR", ":9090")
	t.Setenv("INTAKE_LOOKUP_BASE_URL", "https://data.example.org/api")
	t.Setenv("INTAKE_LOOKUP_MAX_RESULTS", "10")
	t.Setenv("INTAKE_RELAY_WEBHOOK_URL", "https://hooks.example.org/intake")
	t.Setenv("INTAKE_LOGGING_LEVEL", "debug")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "https://data.example.org/api", cfg.Lookup.BaseURL)
	assert.Equal(t, 10, cfg.Lookup.MaxResults)
	assert.Equal(t, "https://hooks.example.org/intake", cfg.Relay.WebhookURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("INTAKE_LOOKUP_MAX_RESULTS", "0")

	_, err := Load()

	assert.Error(t, err)
}
