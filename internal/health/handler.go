package health

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// LiveHandler answers liveness probes. It only reports that the process is
// serving requests.
func (c *Checker) LiveHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": c.version,
	})
}

// ReadyHandler answers readiness probes with the result of every registered
// check; any failing check turns the response into a 503.
func (c *Checker) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	resp := c.Check(r.Context())

	status := http.StatusOK
	if resp.Status != StatusHealthy {
		status = http.StatusServiceUnavailable

		slog.WarnContext(r.Context(), "readiness check failed",
			slog.String("event", "health.ready.fail"),
			slog.Any("checks", resp.Checks),
		)
	}

	writeJSON(w, r, status, resp)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.WarnContext(r.Context(), "failed to write health response", slog.String("error", err.Error()))
	}
}
