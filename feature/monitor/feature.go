package monitor

import (
	"context"

	"craft-sleuth/core/loader"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature exposes the status API through the loader.
type Feature struct {
	handler *Handler
	enabled bool
}

var _ loader.Feature = (*Feature)(nil)

// NewFeature creates the monitor feature.
func NewFeature(runner *Runner, posts PostReader, runCtx context.Context, logger *zap.Logger, enabled bool) *Feature {
	return &Feature{handler: NewHandler(runner, posts, runCtx, logger), enabled: enabled}
}

func (f *Feature) Name() string    { return "monitor" }
func (f *Feature) IsEnabled() bool { return f.enabled }

// Load registers the status routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
