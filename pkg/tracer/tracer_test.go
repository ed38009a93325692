package tracer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartWithoutInit(t *testing.T) {
	ctx, span := Start(context.Background(), "noop")
	defer span.End()

	require.NotNil(t, ctx)
	assert.False(t, span.SpanContext().IsValid())
}

func TestInit(t *testing.T) {
	// the exporter connects lazily, so no collector is needed here
	shutdown, err := Init(context.Background(), "localhost:4318")
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	_, span := Start(context.Background(), "real")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}
