package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(overrides map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestDefaults(t *testing.T) {
	cfg, err := fromViper(newViper(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "json", cfg.StoreBackend)
	assert.False(t, cfg.AtomicWrites)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Equal(t, 10, cfg.MaxUploadMB)
}

func TestOverrides(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{
		"STORE_BACKEND":       "BOLT",
		"STORE_ATOMIC_WRITES": "true",
		"TOKEN_TTL":           "30m",
	}))
	require.NoError(t, err)
	assert.Equal(t, "bolt", cfg.StoreBackend)
	assert.True(t, cfg.AtomicWrites)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
}

func TestValidation(t *testing.T) {
	_, err := fromViper(newViper(map[string]any{"JWT_SECRET": ""}))
	assert.ErrorContains(t, err, "JWT_SECRET is required")

	_, err = fromViper(newViper(map[string]any{"LOG_ENV": "prod"}))
	assert.ErrorContains(t, err, "LOG_ENV=prod")

	_, err = fromViper(newViper(map[string]any{"STORE_BACKEND": "postgres"}))
	assert.ErrorContains(t, err, "DATABASE_DSN")

	_, err = fromViper(newViper(map[string]any{"TOKEN_TTL": "-1h"}))
	assert.ErrorContains(t, err, "TOKEN_TTL")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", ":9999")
	t.Setenv("DATA_DIR", "/tmp/wardrobe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.AppPort)
	assert.Equal(t, "/tmp/wardrobe", cfg.DataDir)
}
