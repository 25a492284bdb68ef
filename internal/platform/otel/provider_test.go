package otel_test

import (
	"context"
	"testing"

	"github.com/poskadesign/events/internal/platform/otel"
	"github.com/stretchr/testify/require"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := otel.Setup(context.Background(), otel.Options{
		ServiceName: "test-service",
		Enabled:     true,
	})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetup_NoopWhenDisabled(t *testing.T) {
	shutdown, err := otel.Setup(context.Background(), otel.Options{
		ServiceName: "test-service",
		Endpoint:    "http://localhost:4318",
	})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address, nothing is exported before shutdown.
	shutdown, err := otel.Setup(context.Background(), otel.Options{
		ServiceName: "test-service",
		Environment: "test",
		Endpoint:    "http://192.0.2.1:4318",
		Enabled:     true,
	})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetup_NoopShutdownIgnoresCancelledContext(t *testing.T) {
	shutdown, err := otel.Setup(context.Background(), otel.Options{ServiceName: "noop-test"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, shutdown(ctx))
}
