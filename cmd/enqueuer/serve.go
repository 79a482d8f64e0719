package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/KasumiMercury/primind-enqueuer/internal/config"
	"github.com/KasumiMercury/primind-enqueuer/internal/enqueue"
	"github.com/KasumiMercury/primind-enqueuer/internal/health"
	"github.com/KasumiMercury/primind-enqueuer/internal/observability/metrics"
	"github.com/KasumiMercury/primind-enqueuer/internal/observability/middleware"
	"github.com/spf13/cobra"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the enqueue HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	obs, err := initObservability(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()

	repos, err := enqueue.NewRepositories(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize enqueue repositories", slog.String("error", err.Error()))

		return err
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Warn("failed to close enqueue repositories", slog.String("error", err.Error()))
		}
	}()

	// warm the cache so the first request does not pay for the remote fetch
	warm := repos.Routes.Refresh(ctx)
	slog.Info("routing table warmed",
		slog.String("outcome", string(warm.Outcome)),
		slog.String("source", warm.Source),
		slog.Int("services", warm.Services),
	)

	enqueueHandler, err := enqueue.NewHTTPHandler(cfg, repos)
	if err != nil {
		slog.Error("failed to initialize enqueue handler", slog.String("error", err.Error()))

		return err
	}

	checker := health.NewChecker(Version)
	checker.Register("routing", enqueue.RoutingReadiness(repos.Routes))

	mux := http.NewServeMux()
	mux.Handle("/", enqueueHandler)
	mux.HandleFunc("GET /healthz/live", checker.LiveHandler)
	mux.HandleFunc("GET /healthz/ready", checker.ReadyHandler)
	mux.Handle("GET /metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.PanicRecoveryHTTP(mux),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting HTTP server", slog.String("addr", srv.Addr), slog.String("version", Version))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("HTTP server failed", slog.String("error", err.Error()))

			return err
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	return nil
}
