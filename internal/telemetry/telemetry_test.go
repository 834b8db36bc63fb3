package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"JobPortal-backend/internal/config"
)

func TestNewDisabled(t *testing.T) {
	tel, err := New(context.Background(), config.OtelConfig{ServiceName: "test"}, config.AppConfig{Version: "1"})
	require.NoError(t, err)
	require.NotNil(t, tel.Tracer)

	ctx, span := tel.Tracer.Start(context.Background(), "op")
	assert.NotEmpty(t, TraceIDFromContext(ctx))
	span.End()

	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestTraceIDFromContext_NoSpan(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))
}
