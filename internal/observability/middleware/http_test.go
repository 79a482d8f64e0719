package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KasumiMercury/primind-enqueuer/internal/observability/logging"
)

func TestHTTPLoggingPropagatesRequestID(t *testing.T) {
	tests := []struct {
		name      string
		incoming  string
		wantEqual bool
	}{
		{"keeps valid incoming id", "req-abc", true},
		{"replaces invalid incoming id", "bad id\n", false},
		{"generates id when missing", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var seenID string
			var seenModule logging.Module

			h := HTTPLogging(logging.Module("enqueue"), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seenID = logging.RequestIDFromContext(r.Context())
				seenModule = logging.ModuleFromContext(r.Context())
				w.WriteHeader(http.StatusAccepted)
			}))

			req := httptest.NewRequest(http.MethodPost, "/enqueue", nil)
			if tt.incoming != "" {
				req.Header.Set("X-Request-Id", tt.incoming)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusAccepted {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusAccepted)
			}

			if seenID == "" {
				t.Fatalf("expected request id in context")
			}

			if got := rec.Header().Get("X-Request-Id"); got != seenID {
				t.Fatalf("response header request id = %q, want %q", got, seenID)
			}

			if tt.wantEqual && seenID != tt.incoming {
				t.Fatalf("request id = %q, want %q", seenID, tt.incoming)
			}

			if !tt.wantEqual && seenID == tt.incoming {
				t.Fatalf("expected generated request id, got incoming %q", seenID)
			}

			if seenModule != "enqueue" {
				t.Fatalf("module = %q, want %q", seenModule, "enqueue")
			}
		})
	}
}

func TestPanicRecoveryHTTP(t *testing.T) {
	h := PanicRecoveryHTTP(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
