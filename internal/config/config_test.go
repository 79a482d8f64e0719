package config

import (
	"errors"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("PROJECT_ID", "ortega-prod")
	t.Setenv("CALLER_SA", "enqueuer@ortega-prod.iam.gserviceaccount.com")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	got, err := LoadFromViper(newViper())
	if err != nil {
		t.Fatalf("LoadFromViper() error = %v, want nil", err)
	}

	if got.TaskQueue.Region != "us-central1" {
		t.Fatalf("Region = %s, want us-central1", got.TaskQueue.Region)
	}

	if got.TaskQueue.Backend != BackendCloudTasks {
		t.Fatalf("Backend = %s, want %s", got.TaskQueue.Backend, BackendCloudTasks)
	}

	if got.TaskQueue.SubmitTimeout != 30*time.Second {
		t.Fatalf("SubmitTimeout = %v, want 30s", got.TaskQueue.SubmitTimeout)
	}

	if got.Routing.Source != SourceEnv {
		t.Fatalf("Source = %s, want %s", got.Routing.Source, SourceEnv)
	}

	if got.Routing.CacheTTL != 5*time.Minute {
		t.Fatalf("CacheTTL = %v, want 5m", got.Routing.CacheTTL)
	}

	if got.Routing.FetchTimeout != 10*time.Second {
		t.Fatalf("FetchTimeout = %v, want 10s", got.Routing.FetchTimeout)
	}

	if got.Routing.FallbackPath != "services.json" {
		t.Fatalf("FallbackPath = %s, want services.json", got.Routing.FallbackPath)
	}

	if got.Port != "8080" {
		t.Fatalf("Port = %s, want 8080", got.Port)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TASKS_REGION", " europe-west1 ")
	t.Setenv("ROUTING_SOURCE", "GCS")
	t.Setenv("ROUTING_CONFIG_URI", "gs://ortega-config/enqueuer/services.json")
	t.Setenv("ROUTING_CACHE_TTL", "90s")
	t.Setenv("TASKS_SUBMIT_TIMEOUT", "5s")
	t.Setenv("PORT", "9090")

	got, err := LoadFromViper(newViper())
	if err != nil {
		t.Fatalf("LoadFromViper() error = %v, want nil", err)
	}

	if got.TaskQueue.Region != "europe-west1" {
		t.Fatalf("Region = %q, want europe-west1", got.TaskQueue.Region)
	}

	if got.Routing.Source != SourceGCS {
		t.Fatalf("Source = %s, want %s", got.Routing.Source, SourceGCS)
	}

	if got.Routing.CacheTTL != 90*time.Second {
		t.Fatalf("CacheTTL = %v, want 90s", got.Routing.CacheTTL)
	}

	if got.TaskQueue.SubmitTimeout != 5*time.Second {
		t.Fatalf("SubmitTimeout = %v, want 5s", got.TaskQueue.SubmitTimeout)
	}

	if got.Port != "9090" {
		t.Fatalf("Port = %s, want 9090", got.Port)
	}
}

func TestLoadError(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		expectedErr error
	}{
		{
			"missing project",
			map[string]string{"PROJECT_ID": "", "CALLER_SA": "sa@example.com"},
			ErrProjectIDMissing,
		},
		{
			"missing caller sa for cloudtasks",
			map[string]string{"PROJECT_ID": "p", "CALLER_SA": ""},
			ErrCallerSAMissing,
		},
		{
			"unknown backend",
			map[string]string{"PROJECT_ID": "p", "CALLER_SA": "sa", "TASKS_BACKEND": "sqs"},
			ErrBackendInvalid,
		},
		{
			"unknown routing source",
			map[string]string{"PROJECT_ID": "p", "CALLER_SA": "sa", "ROUTING_SOURCE": "consul"},
			ErrRoutingSourceInvalid,
		},
		{
			"gcs source without uri",
			map[string]string{"PROJECT_ID": "p", "CALLER_SA": "sa", "ROUTING_SOURCE": "gcs"},
			ErrRoutingConfigURIInvalid,
		},
		{
			"negative ttl",
			map[string]string{"PROJECT_ID": "p", "CALLER_SA": "sa", "ROUTING_CACHE_TTL": "-1m"},
			ErrDurationInvalid,
		},
		{
			"ttl without unit",
			map[string]string{"PROJECT_ID": "p", "CALLER_SA": "sa", "ROUTING_CACHE_TTL": "300"},
			ErrDurationInvalid,
		},
		{
			"sub-second fetch timeout",
			map[string]string{"PROJECT_ID": "p", "CALLER_SA": "sa", "ROUTING_FETCH_TIMEOUT": "500ms"},
			ErrDurationInvalid,
		},
		{
			"submit timeout without unit",
			map[string]string{"PROJECT_ID": "p", "CALLER_SA": "sa", "TASKS_SUBMIT_TIMEOUT": "30"},
			ErrDurationInvalid,
		},
		{
			"invalid port",
			map[string]string{"PROJECT_ID": "p", "CALLER_SA": "sa", "PORT": "http"},
			ErrPortInvalid,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadFromViper(newViper())
			if err == nil {
				t.Fatalf("LoadFromViper() error = nil, want %v", tt.expectedErr)
			}

			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("LoadFromViper() error = %v, want %v", err, tt.expectedErr)
			}
		})
	}
}

func TestNoopBackendDoesNotRequireCallerSA(t *testing.T) {
	t.Setenv("PROJECT_ID", "local")
	t.Setenv("CALLER_SA", "")
	t.Setenv("TASKS_BACKEND", "noop")

	if _, err := LoadFromViper(newViper()); err != nil {
		t.Fatalf("LoadFromViper() error = %v, want nil", err)
	}
}

func TestParseGCSURI(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantBucket string
		wantObject string
		wantErr    bool
	}{
		{"valid", "gs://cfg/enqueuer/services.json", "cfg", "enqueuer/services.json", false},
		{"empty", "", "", "", true},
		{"wrong scheme", "s3://cfg/services.json", "", "", true},
		{"missing object", "gs://cfg/", "", "", true},
		{"missing bucket", "gs:///services.json", "", "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			bucket, object, err := ParseGCSURI(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrRoutingConfigURIInvalid) {
					t.Fatalf("ParseGCSURI(%q) error = %v, want %v", tt.raw, err, ErrRoutingConfigURIInvalid)
				}

				return
			}

			if err != nil {
				t.Fatalf("ParseGCSURI(%q) unexpected error: %v", tt.raw, err)
			}

			if bucket != tt.wantBucket || object != tt.wantObject {
				t.Fatalf("ParseGCSURI(%q) = (%q, %q), want (%q, %q)", tt.raw, bucket, object, tt.wantBucket, tt.wantObject)
			}
		})
	}
}
