package app

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vadimbarashkov/shortlink/internal/config"
)

func TestLoggerOptions(t *testing.T) {
	t.Run("dev", func(t *testing.T) {
		opts := loggerOptions(config.EnvDev)

		assert.False(t, opts.JSON)
		assert.True(t, opts.Concise)
		assert.Equal(t, slog.LevelDebug, opts.LogLevel)
		assert.Equal(t, config.EnvDev, opts.Tags["env"])
	})

	t.Run("prod", func(t *testing.T) {
		opts := loggerOptions(config.EnvProd)

		assert.True(t, opts.JSON)
		assert.False(t, opts.Concise)
		assert.Equal(t, slog.LevelInfo, opts.LogLevel)
	})
}
