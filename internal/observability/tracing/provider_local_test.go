//go:build !gcloud

package tracing

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestNewProviderInstallsPropagator(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{
		ServiceName:  "enqueuer",
		Environment:  "dev",
		SamplingRate: 1,
	})
	if err != nil {
		t.Fatalf("NewProvider() unexpected error: %v", err)
	}

	p.Install()

	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

	ctx, span := otel.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	if !span.SpanContext().IsSampled() {
		t.Fatalf("expected span to be sampled at rate 1")
	}

	carrier := map[string]string{}
	InjectToMap(ctx, carrier)

	if carrier["traceparent"] == "" {
		t.Fatalf("expected traceparent header, got %v", carrier)
	}
}
