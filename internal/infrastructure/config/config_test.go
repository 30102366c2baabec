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

	assert.Equal(t, 3333, cfg.Server.Port)
	assert.Equal(t, "./base_dados.json", cfg.Store.Path)
	assert.Equal(t, "*", cfg.Security.CORSAllowedOrigins)
	assert.Equal(t, time.Minute, cfg.Security.RateLimitWindow)
	assert.True(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.App.IsDevelopment())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("STORE_PATH", "/tmp/data.json")
	t.Setenv("STORE_WATCH", "true")
	t.Setenv("SERVER_BASE_PATH", "/api")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "/tmp/data.json", cfg.Store.Path)
	assert.True(t, cfg.Store.Watch)
	assert.Equal(t, "/api", cfg.Server.BasePath)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "0.0.0.0:8081", cfg.Server.Address())
}

func TestLoad_RejectsInvalid(t *testing.T) {
	t.Setenv("SERVER_PORT", "70000")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsRelativeBasePath(t *testing.T) {
	t.Setenv("SERVER_BASE_PATH", "api")

	_, err := Load()
	assert.Error(t, err)
}
