package logger

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		enabled zapcore.Level
		wantErr bool
	}{
		{"Debug console", Config{Level: "debug", Format: "console"}, zapcore.DebugLevel, false},
		{"Warn json", Config{Level: "warn", Format: "json"}, zapcore.WarnLevel, false},
		{"Default level", Config{Format: "json"}, zapcore.InfoLevel, false},
		{"Invalid level", Config{Level: "loud"}, zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.enabled))
			assert.False(t, l.Core().Enabled(tt.enabled-1))
		})
	}
}

func TestWithRayID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals("ray_id", "abc-123")
		WithRayID(base, c).Info("hello")
		return c.SendStatus(fiber.StatusNoContent)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "abc-123", logs.All()[0].ContextMap()["ray_id"])
}
