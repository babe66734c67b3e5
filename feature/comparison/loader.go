package comparison

import (
	"time"

	"asset-lists/core/assetlist"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface for comparisons.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new comparison feature.
func NewFeature(store assetlist.Store, logger *zap.Logger, timeout time.Duration) *Feature {
	svc := NewService(store, logger, timeout)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "comparison"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
