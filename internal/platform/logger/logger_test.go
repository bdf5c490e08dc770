package logger

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkemper/driftboard-api/internal/config"
)

func TestSetup(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
		l, err := Setup(config.ServerConfig{LogLevel: level})
		require.NoError(t, err, "level %q", level)
		assert.NotNil(t, l)
	}

	// An unknown level falls back to info instead of failing startup
	l, err := Setup(config.ServerConfig{LogLevel: "chatty"})
	require.NoError(t, err)
	assert.True(t, l.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, l.Enabled(context.Background(), slog.LevelDebug))
}

func TestLoggerContext(t *testing.T) {
	attached := slog.New(slog.NewTextHandler(io.Discard, nil))
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx := WithLogger(context.Background(), attached)
	assert.Same(t, attached, FromContext(ctx))
	assert.Same(t, attached, FromContextOrDefault(ctx, fallback))

	// Without an attached logger the fallback wins, then the global default
	empty := context.Background()
	assert.Same(t, fallback, FromContextOrDefault(empty, fallback))
	assert.NotNil(t, FromContext(empty))
	assert.NotNil(t, FromContextOrDefault(empty, nil))
}
