//go:build !gcloud

package main

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-reminder-alarm/internal/config"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/infra/pubsub"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/observability"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/observability/logging"
)

func validatePlatform(_ *config.Config) error {
	return nil
}

// initPublisher returns a nil interface when NATS is not configured.
func initPublisher(ctx context.Context, cfg *config.Config) (pubsub.Publisher, error) {
	if cfg.PubSub.NatsURL == "" {
		slog.Warn("NATS_URL not set, alarm event publishing disabled")

		return nil, nil
	}

	publisher, err := pubsub.NewNATSPublisherWithStream(ctx, pubsub.NATSPublisherConfig{
		URL: cfg.PubSub.NatsURL,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("NATS publisher initialized", "url", cfg.PubSub.NatsURL)

	return publisher, nil
}

func initObservability(ctx context.Context, cfg *config.Config) (*observability.Resources, error) {
	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:    serviceName,
			Version: Version,
		},
		Environment:   logging.Environment(cfg.Log.Environment),
		SamplingRate:  1.0,
		DefaultModule: logging.ModuleScheduler,
		LogLevel:      logging.ParseLevel(cfg.Log.Level),
	})
}
