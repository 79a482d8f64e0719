// Package routecache keeps the routing table in memory, refreshing it from a
// primary source once the TTL elapses and falling back to a secondary source
// when nothing has been loaded yet.
package routecache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/KasumiMercury/primind-enqueuer/internal/enqueue/domain/route"
	"github.com/KasumiMercury/primind-enqueuer/internal/enqueue/infra/clock"
	"github.com/KasumiMercury/primind-enqueuer/internal/enqueue/infra/routesource"
	"github.com/KasumiMercury/primind-enqueuer/internal/observability/metrics"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTTL          = 5 * time.Minute
	DefaultFetchTimeout = 10 * time.Second

	staleRefreshKey  = "stale"
	manualRefreshKey = "manual"
)

type Config struct {
	Primary      routesource.Source
	Fallback     routesource.Source
	TTL          time.Duration
	FetchTimeout time.Duration
	Clock        clock.Clock
}

type Cache struct {
	primary      routesource.Source
	fallback     routesource.Source
	ttl          time.Duration
	fetchTimeout time.Duration
	clock        clock.Clock
	current      atomic.Pointer[snapshot]
	group        singleflight.Group
	logger       *slog.Logger
}

// New creates a cold cache. No source is contacted until the first read or
// an explicit Refresh.
func New(cfg Config) (*Cache, error) {
	if cfg.Primary == nil {
		return nil, ErrPrimarySourceRequired
	}

	if cfg.TTL < 0 {
		return nil, fmt.Errorf("%w: got %v", ErrTTLInvalid, cfg.TTL)
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	fetchTimeout := cfg.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.RealClock{}
	}

	c := &Cache{
		primary:      cfg.Primary,
		fallback:     cfg.Fallback,
		ttl:          ttl,
		fetchTimeout: fetchTimeout,
		clock:        clk,
		logger:       slog.Default().WithGroup("enqueue").WithGroup("routecache"),
	}
	c.current.Store(&snapshot{})

	return c, nil
}

// RoutingTable returns the held table, refreshing it first when it is stale.
// It never fails; on a cold start with no reachable source the table is empty.
func (c *Cache) RoutingTable(ctx context.Context) route.Table {
	snap := c.current.Load()

	if snap.state(c.clock.Now(), c.ttl) != StateWarmFresh {
		c.do(ctx, staleRefreshKey, true)
		snap = c.current.Load()
	}

	return snap.table
}

// Resolve looks up name in the current routing table.
func (c *Cache) Resolve(ctx context.Context, name string) (route.Entry, error) {
	e, ok := c.RoutingTable(ctx).Lookup(name)
	if !ok {
		return route.Entry{}, fmt.Errorf("%w: %q", ErrServiceNotFound, name)
	}

	return e, nil
}

// Refresh reloads the table regardless of its age.
func (c *Cache) Refresh(ctx context.Context) RefreshResult {
	return c.do(ctx, manualRefreshKey, false)
}

// do runs at most one refresh per key at a time; concurrent callers share
// its result. The attempt is detached from ctx, which only bounds how long
// this caller waits for it.
func (c *Cache) do(ctx context.Context, key string, onlyIfStale bool) RefreshResult {
	detached := context.WithoutCancel(ctx)

	ch := c.group.DoChan(key, func() (any, error) {
		if onlyIfStale {
			if snap := c.current.Load(); snap.state(c.clock.Now(), c.ttl) == StateWarmFresh {
				return RefreshResult{
					Outcome:  OutcomeFresh,
					Source:   snap.source,
					Services: snap.table.Len(),
				}, nil
			}
		}

		return c.refresh(detached), nil
	})

	select {
	case res := <-ch:
		result, _ := res.Val.(RefreshResult)

		return result
	case <-ctx.Done():
		return RefreshResult{
			Outcome:  OutcomeAborted,
			Services: c.current.Load().table.Len(),
			Err:      fmt.Errorf("%w: %w", ErrRefreshAborted, ctx.Err()),
		}
	}
}

// Info reports the current state without triggering a refresh.
func (c *Cache) Info() Info {
	snap := c.current.Load()

	return Info{
		State:    snap.state(c.clock.Now(), c.ttl),
		Services: snap.table.Names(),
		LoadedAt: snap.loadedAt,
		Source:   snap.source,
	}
}

func (c *Cache) refresh(ctx context.Context) RefreshResult {
	table, err := c.load(ctx, c.primary)
	if err == nil {
		c.publish(ctx, table, c.primary.Name())

		return c.record(RefreshResult{
			Outcome:  OutcomePrimary,
			Source:   c.primary.Name(),
			Services: table.Len(),
		})
	}

	c.logger.WarnContext(ctx, "failed to load routing table from primary source",
		slog.String("event", "routing.refresh.fail"),
		slog.String("source", c.primary.Name()),
		slog.String("error", err.Error()),
	)

	held := c.current.Load()
	if !held.table.IsEmpty() {
		// keep serving the previous table; loadedAt stays so the next read retries
		return c.record(RefreshResult{
			Outcome:  OutcomeStale,
			Source:   held.source,
			Services: held.table.Len(),
			Err:      fmt.Errorf("%w: %w", ErrConfigSourceUnavailable, err),
		})
	}

	if c.fallback == nil {
		return c.record(RefreshResult{
			Outcome: OutcomeEmpty,
			Err:     fmt.Errorf("%w: %w", ErrConfigSourceUnavailable, err),
		})
	}

	fallbackTable, fallbackErr := c.load(ctx, c.fallback)
	if fallbackErr != nil {
		c.logger.ErrorContext(ctx, "failed to load routing table from fallback source",
			slog.String("event", "routing.fallback.fail"),
			slog.String("source", c.fallback.Name()),
			slog.String("error", fallbackErr.Error()),
		)

		return c.record(RefreshResult{
			Outcome: OutcomeEmpty,
			Err:     fmt.Errorf("%w: %w", ErrConfigSourceUnavailable, errors.Join(err, fallbackErr)),
		})
	}

	c.publish(ctx, fallbackTable, c.fallback.Name())

	return c.record(RefreshResult{
		Outcome:  OutcomeFallback,
		Source:   c.fallback.Name(),
		Services: fallbackTable.Len(),
		Err:      fmt.Errorf("%w: %w", ErrConfigSourceUnavailable, err),
	})
}

func (c *Cache) load(ctx context.Context, src routesource.Source) (route.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	return src.Load(ctx)
}

func (c *Cache) publish(ctx context.Context, table route.Table, source string) {
	c.current.Store(&snapshot{
		table:    table,
		loadedAt: c.clock.Now(),
		source:   source,
	})

	c.logger.InfoContext(ctx, "routing table loaded",
		slog.String("event", "routing.refresh.finish"),
		slog.String("source", source),
		slog.Any("services", table.Names()),
	)
}

func (c *Cache) record(res RefreshResult) RefreshResult {
	metrics.RoutingRefreshes.WithLabelValues(string(res.Outcome)).Inc()
	metrics.RoutingServices.Set(float64(c.current.Load().table.Len()))

	return res
}
