package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SERVICE_NAME", "ENV", "LOG_FILE", "LOG_LEVEL", "EVENTS_MODE", "EVENTS_HTTP_ADDR",
		"EVENTS_OTEL_ENDPOINT", "EVENTS_OTEL_ENABLED", "EVENTS_DEMO_INPUT", "EVENTS_SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "events-demo", cfg.ServiceName)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ModeRun, cfg.Mode)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.True(t, cfg.OTelEnabled)
	assert.False(t, cfg.TracingEnabled(), "no endpoint configured")
	assert.Equal(t, "Hello", cfg.DemoInput)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVICE_NAME", "widgets")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("EVENTS_MODE", "SERVE")
	t.Setenv("EVENTS_HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("EVENTS_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("EVENTS_DEMO_INPUT", "abc")
	t.Setenv("EVENTS_SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "widgets", cfg.ServiceName)
	assert.Equal(t, ModeServe, cfg.Mode)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
	assert.True(t, cfg.TracingEnabled())
	assert.Equal(t, "abc", cfg.DemoInput)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)
}

func TestLoadTracingDisabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("EVENTS_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("EVENTS_OTEL_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.TracingEnabled())
}

func TestLoadParseError(t *testing.T) {
	clearEnv(t)
	t.Setenv("EVENTS_SHUTDOWN_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
	assert.False(t, IsInvalid(err))
}

func TestValidate(t *testing.T) {
	valid := Config{LogLevel: "info", Mode: ModeRun, ShutdownTimeout: time.Second}
	require.NoError(t, valid.Validate())

	tests := map[string]func(*Config){
		"unknown mode":         func(c *Config) { c.Mode = "daemon" },
		"unknown level":        func(c *Config) { c.LogLevel = "loud" },
		"serve without addr":   func(c *Config) { c.Mode = ModeServe; c.HTTPAddr = "" },
		"zero shutdown window": func(c *Config) { c.ShutdownTimeout = 0 },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, IsInvalid(err))
		})
	}
}
