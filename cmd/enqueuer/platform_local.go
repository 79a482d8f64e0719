//go:build !gcloud

package main

import (
	"context"
	"os"

	"github.com/KasumiMercury/primind-enqueuer/internal/config"
	"github.com/KasumiMercury/primind-enqueuer/internal/observability"
	"github.com/KasumiMercury/primind-enqueuer/internal/observability/logging"
)

func initObservability(ctx context.Context, cfg *config.Config) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:    serviceName,
			Version: Version,
		},
		Environment:   env,
		SamplingRate:  1.0,
		DefaultModule: logging.Module("enqueuer"),
		LogLevel:      logging.ParseLevel(cfg.LogLevel),
	})
	if err != nil {
		return nil, err
	}

	return obs, nil
}
