package routecache

import (
	"time"

	"github.com/KasumiMercury/primind-enqueuer/internal/enqueue/domain/route"
)

type State string

const (
	// StateColdEmpty: nothing has ever been loaded.
	StateColdEmpty State = "cold-empty"
	// StateWarmFresh: loaded within the TTL.
	StateWarmFresh State = "warm-fresh"
	// StateWarmStale: loaded, but the TTL has elapsed or the last refresh failed.
	StateWarmStale State = "warm-stale"
)

// Outcome describes how a refresh attempt ended.
type Outcome string

const (
	OutcomePrimary  Outcome = "primary"
	OutcomeFallback Outcome = "fallback"
	OutcomeStale    Outcome = "stale"
	OutcomeEmpty    Outcome = "empty"
	OutcomeAborted  Outcome = "aborted"
	// OutcomeFresh: another caller refreshed first, nothing was loaded.
	OutcomeFresh Outcome = "fresh"
)

type RefreshResult struct {
	Outcome  Outcome
	Source   string
	Services int
	Err      error
}

// snapshot is published as a whole; its fields are never mutated after Store.
type snapshot struct {
	table    route.Table
	loadedAt time.Time
	source   string
}

func (s *snapshot) state(now time.Time, ttl time.Duration) State {
	if s.loadedAt.IsZero() {
		return StateColdEmpty
	}

	if now.Sub(s.loadedAt) > ttl {
		return StateWarmStale
	}

	return StateWarmFresh
}

// Info is a point-in-time view of the cache for diagnostics.
type Info struct {
	State    State
	Services []string
	LoadedAt time.Time
	Source   string
}
