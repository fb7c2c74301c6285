package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetup_NoEndpointIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetup_WithEndpoint(t *testing.T) {
	// The gRPC exporter connects lazily, so no collector is needed here
	shutdown, err := Setup(context.Background(), Config{
		Endpoint: "127.0.0.1:4317",
		Insecure: true,
		Version:  "test",
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}
