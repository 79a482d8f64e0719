package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLiveHandler(t *testing.T) {
	c := NewChecker("v1")
	c.Register("routing", func(context.Context) error { return errors.New("empty") })

	rec := httptest.NewRecorder()
	c.LiveHandler(rec, httptest.NewRequest(http.MethodGet, "/healthz/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestReadyHandler(t *testing.T) {
	tests := []struct {
		name       string
		routingErr error
		wantStatus int
		want       Response
	}{
		{
			name:       "healthy",
			wantStatus: http.StatusOK,
			want: Response{
				Status:  StatusHealthy,
				Version: "v1",
				Checks:  map[string]CheckResult{"routing": {Status: StatusHealthy}},
			},
		},
		{
			name:       "unhealthy",
			routingErr: errors.New("routing table is empty"),
			wantStatus: http.StatusServiceUnavailable,
			want: Response{
				Status:  StatusUnhealthy,
				Version: "v1",
				Checks: map[string]CheckResult{
					"routing": {Status: StatusUnhealthy, Message: "routing table is empty"},
				},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker("v1")
			c.Register("routing", func(context.Context) error { return tt.routingErr })

			rec := httptest.NewRecorder()
			c.ReadyHandler(rec, httptest.NewRequest(http.MethodGet, "/healthz/ready", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var got Response
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("response mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckWithoutChecksIsHealthy(t *testing.T) {
	if got := NewChecker("").Check(context.Background()); got.Status != StatusHealthy {
		t.Fatalf("Status = %q, want %q", got.Status, StatusHealthy)
	}
}
