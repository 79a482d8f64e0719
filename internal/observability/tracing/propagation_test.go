package tracing

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func TestInjectToMapWritesTraceparent(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	carrier := map[string]string{}
	InjectToMap(ctx, carrier)

	want := "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"
	if got := carrier["traceparent"]; got != want {
		t.Fatalf("traceparent = %q, want %q", got, want)
	}
}

func TestInjectToMapWithoutSpanLeavesCarrierEmpty(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})

	carrier := map[string]string{}
	InjectToMap(context.Background(), carrier)

	if len(carrier) != 0 {
		t.Fatalf("expected empty carrier, got %v", carrier)
	}
}
