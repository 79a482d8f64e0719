package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/KasumiMercury/primind-enqueuer/internal/observability/logging"
	"github.com/KasumiMercury/primind-enqueuer/internal/observability/metrics"
	"github.com/KasumiMercury/primind-enqueuer/internal/observability/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const requestIDHeader = "X-Request-Id"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}

	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}

	return r.ResponseWriter.Write(b)
}

// HTTPLogging attaches a request id, module and server span to every request
// and logs its completion.
func HTTPLogging(module logging.Module, next http.Handler) http.Handler {
	tracer := otel.Tracer("github.com/KasumiMercury/primind-enqueuer/internal/observability/middleware")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := logging.ValidateAndExtractRequestID(r.Header.Get(requestIDHeader))

		ctx := tracing.ExtractFromHTTPRequest(r)
		ctx = logging.WithRequestID(ctx, requestID)

		if module != "" {
			ctx = logging.WithModule(ctx, module)
		}

		route := r.Method + " " + r.URL.Path

		ctx, span := tracer.Start(ctx, route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("url.path", r.URL.Path),
			),
		)
		defer span.End()

		w.Header().Set(requestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w}
		req := r.WithContext(ctx)
		next.ServeHTTP(rec, req)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}

		span.SetAttributes(attribute.Int("http.response.status_code", status))

		pattern := req.Pattern
		if pattern == "" {
			pattern = "unmatched"
		}

		metrics.HTTPRequests.WithLabelValues(pattern, strconv.Itoa(status)).Inc()

		attrs := []any{
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
		}

		if status >= http.StatusInternalServerError {
			slog.ErrorContext(ctx, "http request failed",
				append([]any{slog.String("event", "http.request.fail")}, attrs...)...)

			return
		}

		slog.InfoContext(ctx, "http request completed",
			append([]any{slog.String("event", "http.request.finish")}, attrs...)...)
	})
}
