package network

import (
	"netviz/core/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the network feature.
func NewFeature(service *Service) *Feature {
	return &Feature{service: service, handler: NewHandler(service)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "network"
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

// MetricsFeature serves the Prometheus endpoint.
type MetricsFeature struct {
	enabled bool
}

// NewMetricsFeature creates the metrics feature.
func NewMetricsFeature(enabled bool) *MetricsFeature {
	return &MetricsFeature{enabled: enabled}
}

// Name returns the name of the feature.
func (f *MetricsFeature) Name() string {
	return "metrics"
}

// IsEnabled checks if the feature is enabled.
func (f *MetricsFeature) IsEnabled() bool {
	return f.enabled
}

// Load registers GET /metrics.
func (f *MetricsFeature) Load(app fiber.Router) error {
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	return nil
}
