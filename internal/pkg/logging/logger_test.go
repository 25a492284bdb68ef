package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerWritesToLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "events.log")

	logger, err := NewLogger(Options{Service: "svc", Env: "test", LogFile: path, Level: zapcore.InfoLevel})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("event_fired", zap.Int("invoked", 2))
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1, "debug entries are below the configured level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "event_fired", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "svc", entry["service"])
	assert.Equal(t, "test", entry["env"])
	assert.Contains(t, entry, "ts")
	assert.EqualValues(t, 2, entry["invoked"])
}

func TestNewLoggerRejectsUnusableLogFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := NewLogger(Options{LogFile: filepath.Join(blocker, "events.log")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prepare log file")
}

func TestWithTrace(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	WithTrace(zap.New(core), SystemTraceID, "").Info("started")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "system", fields["trace_id"])
	assert.Equal(t, "unknown", fields["span_id"])
}
