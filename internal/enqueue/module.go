package enqueue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/KasumiMercury/primind-enqueuer/internal/config"
	appenqueue "github.com/KasumiMercury/primind-enqueuer/internal/enqueue/app/enqueue"
	"github.com/KasumiMercury/primind-enqueuer/internal/enqueue/controller/httpapi"
	"github.com/KasumiMercury/primind-enqueuer/internal/enqueue/infra/clock"
	"github.com/KasumiMercury/primind-enqueuer/internal/enqueue/infra/routecache"
	"github.com/KasumiMercury/primind-enqueuer/internal/enqueue/infra/routesource"
	"github.com/KasumiMercury/primind-enqueuer/internal/enqueue/infra/taskqueue"
	"github.com/KasumiMercury/primind-enqueuer/internal/health"
	"github.com/KasumiMercury/primind-enqueuer/internal/observability/logging"
	"github.com/KasumiMercury/primind-enqueuer/internal/observability/middleware"
)

const moduleName logging.Module = "enqueue"

var ErrRoutingTableEmpty = errors.New("routing table is empty")

type Repositories struct {
	Routes          *routecache.Cache
	TaskQueueClient taskqueue.Client
	closers         []io.Closer
}

func (r *Repositories) Close() error {
	if r == nil {
		return nil
	}

	var errs []error

	if r.TaskQueueClient != nil {
		errs = append(errs, r.TaskQueueClient.Close())
	}

	for _, c := range r.closers {
		errs = append(errs, c.Close())
	}

	return errors.Join(errs...)
}

// NewRepositories builds the routing cache and the task queue client
// selected by cfg. The cache is returned cold.
func NewRepositories(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	logger := slog.Default().With(
		slog.String("module", string(moduleName)),
	).WithGroup("enqueue")

	repos := &Repositories{}

	primary, fallback, err := newRoutingSources(ctx, cfg.Routing, repos)
	if err != nil {
		_ = repos.Close()

		return nil, err
	}

	routes, err := routecache.New(routecache.Config{
		Primary:      primary,
		Fallback:     fallback,
		TTL:          cfg.Routing.CacheTTL,
		FetchTimeout: cfg.Routing.FetchTimeout,
		Clock:        &clock.RealClock{},
	})
	if err != nil {
		_ = repos.Close()

		return nil, fmt.Errorf("failed to create routing cache: %w", err)
	}

	repos.Routes = routes

	fallbackName := "none"
	if fallback != nil {
		fallbackName = fallback.Name()
	}

	logger.Info("routing cache configured",
		slog.String("primary", primary.Name()),
		slog.String("fallback", fallbackName),
		slog.Duration("ttl", cfg.Routing.CacheTTL),
	)

	switch cfg.TaskQueue.Backend {
	case config.BackendNoop:
		logger.Warn("using noop task queue; tasks will not be delivered")

		repos.TaskQueueClient = taskqueue.NewNoopClient()
	default:
		client, err := taskqueue.NewCloudTasksClient(ctx, taskqueue.CloudTasksClientConfig{
			EmulatorHost: cfg.TaskQueue.EmulatorHost,
		})
		if err != nil {
			_ = repos.Close()

			return nil, err
		}

		if cfg.TaskQueue.EmulatorHost != "" {
			logger.Info("using cloud tasks emulator", slog.String("host", cfg.TaskQueue.EmulatorHost))
		}

		repos.TaskQueueClient = client
	}

	return repos, nil
}

func newRoutingSources(ctx context.Context, cfg config.RoutingConfig, repos *Repositories) (routesource.Source, routesource.Source, error) {
	switch cfg.Source {
	case config.SourceFile:
		return routesource.NewFileSource(cfg.FallbackPath), nil, nil
	case config.SourceGCS:
		bucket, object, err := config.ParseGCSURI(cfg.ConfigURI)
		if err != nil {
			return nil, nil, err
		}

		gcs, err := routesource.NewGCSSource(ctx, bucket, object)
		if err != nil {
			return nil, nil, err
		}

		repos.closers = append(repos.closers, gcs)

		return gcs, routesource.NewFileSource(cfg.FallbackPath), nil
	default:
		return routesource.NewEnvSource(), nil, nil
	}
}

// NewHTTPHandler wires the enqueue use case and returns its HTTP handler with
// request logging applied.
func NewHTTPHandler(cfg *config.Config, repos *Repositories) (http.Handler, error) {
	logger := slog.Default().With(
		slog.String("module", string(moduleName)),
	).WithGroup("enqueue")

	if repos == nil || repos.Routes == nil {
		return nil, fmt.Errorf("routing cache is not configured")
	}

	if repos.TaskQueueClient == nil {
		return nil, fmt.Errorf("task queue client is not configured")
	}

	useCase := appenqueue.NewHandler(repos.Routes, repos.TaskQueueClient, appenqueue.Config{
		ProjectID:            cfg.TaskQueue.ProjectID,
		Location:             cfg.TaskQueue.Region,
		CallerServiceAccount: cfg.TaskQueue.CallerServiceAccount,
		SubmitTimeout:        cfg.TaskQueue.SubmitTimeout,
	})

	mux := http.NewServeMux()
	httpapi.NewHandler(useCase).Register(mux)

	logger.Info("enqueue handler registered")

	return middleware.HTTPLogging(moduleName, mux), nil
}

// RoutingReadiness reports not ready until at least one service is routable.
func RoutingReadiness(routes *routecache.Cache) health.CheckFunc {
	return func(_ context.Context) error {
		info := routes.Info()
		if len(info.Services) == 0 {
			return fmt.Errorf("%w: state %s", ErrRoutingTableEmpty, info.State)
		}

		return nil
	}
}
