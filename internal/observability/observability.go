// Package observability wires logging and tracing for the process.
package observability

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/KasumiMercury/primind-enqueuer/internal/observability/logging"
	"github.com/KasumiMercury/primind-enqueuer/internal/observability/tracing"
)

type Config struct {
	ServiceInfo   logging.ServiceInfo
	Environment   logging.Environment
	GCPProjectID  string
	SamplingRate  float64
	DefaultModule logging.Module
	LogLevel      slog.Level
}

type Resources struct {
	Logger         *slog.Logger
	TracerProvider *tracing.Provider
}

// Init installs the default slog logger and the global tracer provider.
func Init(ctx context.Context, cfg Config) (*Resources, error) {
	logger := logging.NewLogger(logging.Config{
		ServiceInfo:   cfg.ServiceInfo,
		Environment:   cfg.Environment,
		GCPProjectID:  cfg.GCPProjectID,
		DefaultModule: cfg.DefaultModule,
		Level:         cfg.LogLevel,
		Output:        os.Stdout,
	})
	slog.SetDefault(logger)

	tp, err := tracing.NewProvider(ctx, tracing.Config{
		ServiceName:    cfg.ServiceInfo.Name,
		ServiceVersion: cfg.ServiceInfo.Version,
		Environment:    string(cfg.Environment),
		GCPProjectID:   cfg.GCPProjectID,
		SamplingRate:   cfg.SamplingRate,
	})
	if err != nil {
		return nil, err
	}

	tp.Install()

	return &Resources{
		Logger:         logger,
		TracerProvider: tp,
	}, nil
}

func (r *Resources) Shutdown(ctx context.Context) error {
	if r == nil || r.TracerProvider == nil {
		return nil
	}

	if err := r.TracerProvider.Shutdown(ctx); err != nil {
		return errors.Join(errors.New("failed to shutdown tracer provider"), err)
	}

	return nil
}
