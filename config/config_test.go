package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"DATABASE_URL": "postgres://localhost/stocksmart",
		"JWT_SECRET":   "secret",
	}))
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GeminiModel)
	assert.Equal(t, 4, cfg.ForecastWorkers)
	assert.Equal(t, 5*time.Minute, cfg.SnapshotTTL)
	assert.Empty(t, cfg.GeminiAPIKey)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"DATABASE_URL":     "postgres://localhost/stocksmart",
		"JWT_SECRET":       "secret",
		"PORT":             "8080",
		"FORECAST_WORKERS": "12",
		"SNAPSHOT_TTL":     "30s",
		"GEMINI_API_KEY":   "key",
	}))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 12, cfg.ForecastWorkers)
	assert.Equal(t, 30*time.Second, cfg.SnapshotTTL)
	assert.Equal(t, "key", cfg.GeminiAPIKey)
}

func TestFromEnvErrors(t *testing.T) {
	_, err := FromEnv(envOf(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL, JWT_SECRET")

	_, err = FromEnv(envOf(map[string]string{
		"DATABASE_URL":     "x",
		"JWT_SECRET":       "y",
		"FORECAST_WORKERS": "zero",
	}))
	assert.ErrorContains(t, err, "FORECAST_WORKERS")

	_, err = FromEnv(envOf(map[string]string{
		"DATABASE_URL": "x",
		"JWT_SECRET":   "y",
		"SNAPSHOT_TTL": "soon",
	}))
	assert.ErrorContains(t, err, "SNAPSHOT_TTL")
}
