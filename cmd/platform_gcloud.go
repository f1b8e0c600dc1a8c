//go:build gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KasumiMercury/primind-reminder-alarm/internal/config"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/infra/pubsub"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/observability"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/observability/logging"
)

func validatePlatform(cfg *config.Config) error {
	return cfg.PubSub.Validate()
}

func initPublisher(ctx context.Context, cfg *config.Config) (pubsub.Publisher, error) {
	publisher, err := pubsub.NewGCloudPublisher(ctx, pubsub.GCloudPublisherConfig{
		ProjectID: cfg.PubSub.GCloudProjectID,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Google Cloud Pub/Sub publisher initialized",
		"project_id", cfg.PubSub.GCloudProjectID,
	)

	return publisher, nil
}

func initObservability(ctx context.Context, cfg *config.Config) (*observability.Resources, error) {
	name := os.Getenv("K_SERVICE")
	if name == "" {
		name = serviceName
	}

	env := logging.EnvProd
	if cfg.Log.Environment != "" && os.Getenv("ENV") != "" {
		env = logging.Environment(cfg.Log.Environment)
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = cfg.PubSub.GCloudProjectID
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     name,
			Version:  Version,
			Revision: os.Getenv("K_REVISION"),
		},
		Environment:   env,
		GCPProjectID:  projectID,
		SamplingRate:  1.0,
		DefaultModule: logging.ModuleScheduler,
		LogLevel:      logging.ParseLevel(cfg.Log.Level),
	})
}
