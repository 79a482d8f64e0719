package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// PanicRecoveryHTTP turns a handler panic into a 500 response. The panic is
// not propagated further so the connection stays usable.
func PanicRecoveryHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		defer func(ctx context.Context) {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				slog.ErrorContext(ctx, "panic recovered",
					slog.String("event", "app.panic"),
					slog.Any("error", rec),
					slog.String("stack", string(debug.Stack())),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"ok":false,"error":"internal","detail":"internal server error"}` + "\n"))
			}
		}(ctx)

		next.ServeHTTP(w, r)
	})
}
