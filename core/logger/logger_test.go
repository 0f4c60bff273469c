package logger

import (
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("Debug Console", func(t *testing.T) {
		l, err := New(&Config{Level: "debug", Format: "console"})
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("Warn JSON", func(t *testing.T) {
		l, err := New(&Config{Level: "warn", Format: "json"})
		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("Invalid Level", func(t *testing.T) {
		_, err := New(&Config{Level: "loud"})
		assert.Error(t, err)
	})

	t.Run("File Output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bot.log")
		l, err := New(&Config{Level: "info", Format: "json", File: path})
		require.NoError(t, err)
		l.Info("hello")
		_ = l.Sync()
		assert.FileExists(t, path)
	})
}

func TestWithRayID(t *testing.T) {
	app := fiber.New()
	base, err := New(&Config{Level: "info", Format: "json"})
	require.NoError(t, err)

	app.Get("/", func(c *fiber.Ctx) error {
		assert.Same(t, base, WithRayID(base, c))
		c.Locals("ray_id", "abc")
		assert.NotSame(t, base, WithRayID(base, c))
		return nil
	})

	_, err = app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
}
