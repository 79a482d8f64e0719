package enqueue

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-enqueuer/internal/config"
)

func testConfig(source config.Source, fallbackPath string) *config.Config {
	return &config.Config{
		TaskQueue: config.TaskQueueConfig{
			ProjectID:     "test-project",
			Region:        "us-central1",
			Backend:       config.BackendNoop,
			SubmitTimeout: time.Second,
		},
		Routing: config.RoutingConfig{
			Source:       source,
			FallbackPath: fallbackPath,
			CacheTTL:     time.Minute,
			FetchTimeout: time.Second,
		},
		Port: "8080",
	}
}

func newModule(t *testing.T, cfg *config.Config) (*Repositories, http.Handler) {
	t.Helper()

	repos, err := NewRepositories(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewRepositories() unexpected error: %v", err)
	}

	t.Cleanup(func() { _ = repos.Close() })

	handler, err := NewHTTPHandler(cfg, repos)
	if err != nil {
		t.Fatalf("NewHTTPHandler() unexpected error: %v", err)
	}

	return repos, handler
}

func post(t *testing.T, h http.Handler, path, body string) (int, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))

	var decoded map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}

	return rec.Code, decoded
}

func TestEnqueueThroughEnvRoutes(t *testing.T) {
	_, handler := newModule(t, testConfig(config.SourceEnv, ""))

	code, body := post(t, handler, "/enqueue", `{"service":"brain","payload":{"doc":"a"}}`)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %v)", code, body)
	}

	wantTask := "projects/test-project/locations/us-central1/queues/queue-brain/tasks/noop-1"
	if body["task"] != wantTask {
		t.Fatalf("task = %v, want %s", body["task"], wantTask)
	}

	if body["deadline_s"] != float64(700) {
		t.Fatalf("deadline_s = %v, want 700", body["deadline_s"])
	}
}

func TestEnqueueGhostServiceIsRejected(t *testing.T) {
	_, handler := newModule(t, testConfig(config.SourceEnv, ""))

	code, body := post(t, handler, "/enqueue", `{"service":"ghost"}`)
	if code != http.StatusUnprocessableEntity || body["error"] != "unknown_service" {
		t.Fatalf("status = %d body = %v, want 422 unknown_service", code, body)
	}
}

func TestConfigRefreshThroughFileRoutes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "services.json")

	doc := `{"brain":{"queue":"queue-brain","url":"https://brain.example.com/process","deadline_s":700}}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("failed to write routing document: %v", err)
	}

	repos, handler := newModule(t, testConfig(config.SourceFile, path))

	readiness := RoutingReadiness(repos.Routes)
	if err := readiness(context.Background()); !errors.Is(err, ErrRoutingTableEmpty) {
		t.Fatalf("readiness before load = %v, want %v", err, ErrRoutingTableEmpty)
	}

	code, body := post(t, handler, "/config/refresh", "")
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}

	services, _ := body["services"].([]any)
	if len(services) != 1 || services[0] != "brain" {
		t.Fatalf("services = %v, want [brain]", body["services"])
	}

	if err := readiness(context.Background()); err != nil {
		t.Fatalf("readiness after load = %v, want nil", err)
	}
}

func TestNewRepositoriesInvalidGCSURI(t *testing.T) {
	cfg := testConfig(config.SourceGCS, "services.json")
	cfg.Routing.ConfigURI = "https://example.com/services.json"

	if _, err := NewRepositories(context.Background(), cfg); !errors.Is(err, config.ErrRoutingConfigURIInvalid) {
		t.Fatalf("NewRepositories() error = %v, want %v", err, config.ErrRoutingConfigURIInvalid)
	}
}

func TestNewHTTPHandlerRequiresRepositories(t *testing.T) {
	if _, err := NewHTTPHandler(testConfig(config.SourceEnv, ""), &Repositories{}); err == nil {
		t.Fatalf("NewHTTPHandler() expected error for empty repositories")
	}
}
