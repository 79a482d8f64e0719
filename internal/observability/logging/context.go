package logging

import (
	"context"
	"regexp"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

type requestIDKey struct{}

type moduleKey struct{}

// Incoming ids are echoed back in headers and logs, so only a safe charset is kept.
var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}

	return ""
}

// ValidateAndExtractRequestID returns raw when it is a usable request id,
// otherwise a freshly generated one.
func ValidateAndExtractRequestID(raw string) string {
	if requestIDPattern.MatchString(raw) {
		return raw
	}

	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}

func WithModule(ctx context.Context, module Module) context.Context {
	return context.WithValue(ctx, moduleKey{}, module)
}

func ModuleFromContext(ctx context.Context) Module {
	if ctx == nil {
		return ""
	}

	if m, ok := ctx.Value(moduleKey{}).(Module); ok {
		return m
	}

	return ""
}

func traceFromContext(ctx context.Context) (string, string, bool) {
	if ctx == nil {
		return "", "", false
	}

	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", "", false
	}

	return sc.TraceID().String(), sc.SpanID().String(), true
}
