//go:build !gcloud

package metrics

import (
	"context"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// NewProvider returns a provider without a reader. Instruments are recorded
// in process but never exported.
func NewProvider(_ context.Context, cfg Config) (*Provider, error) {
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(newResource(cfg)),
	)

	return &Provider{mp: mp}, nil
}
