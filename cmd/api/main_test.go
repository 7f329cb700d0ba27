package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sptrans.olhovivo.dev/internal/appconf"
)

func TestNewLogger(t *testing.T) {
	cfg := appconf.Default()
	cfg.LogLevel = "debug"

	logger, err := newLogger(cfg)
	require.NoError(t, err)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	cfg.Env = appconf.Production
	cfg.LogLevel = "warn"
	logger, err = newLogger(cfg)
	require.NoError(t, err)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))

	cfg.LogLevel = "verbose"
	_, err = newLogger(cfg)
	assert.Error(t, err)
}
