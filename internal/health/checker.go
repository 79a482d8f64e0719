package health

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

const defaultCheckTimeout = 2 * time.Second

// CheckFunc reports a dependency as unhealthy by returning an error.
type CheckFunc func(ctx context.Context) error

type CheckResult struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

type Response struct {
	Status  Status                 `json:"status"`
	Version string                 `json:"version,omitempty"`
	Checks  map[string]CheckResult `json:"checks"`
}

type Checker struct {
	mu      sync.RWMutex
	checks  map[string]CheckFunc
	version string
	timeout time.Duration
}

func NewChecker(version string) *Checker {
	return &Checker{
		checks:  make(map[string]CheckFunc),
		version: version,
		timeout: defaultCheckTimeout,
	}
}

// Register adds a named readiness check, replacing any check with the same name.
func (c *Checker) Register(name string, fn CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.checks[name] = fn
}

// Check runs every registered check; the overall status is healthy only when
// all of them pass.
func (c *Checker) Check(ctx context.Context) Response {
	c.mu.RLock()
	checks := maps.Clone(c.checks)
	c.mu.RUnlock()

	resp := Response{
		Status:  StatusHealthy,
		Version: c.version,
		Checks:  make(map[string]CheckResult, len(checks)),
	}

	for _, name := range slices.Sorted(maps.Keys(checks)) {
		checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
		err := checks[name](checkCtx)
		cancel()

		if err != nil {
			resp.Status = StatusUnhealthy
			resp.Checks[name] = CheckResult{Status: StatusUnhealthy, Message: err.Error()}

			continue
		}

		resp.Checks[name] = CheckResult{Status: StatusHealthy}
	}

	return resp
}
