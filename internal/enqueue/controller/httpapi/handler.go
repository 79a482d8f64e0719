// Package httpapi exposes the enqueue use case over plain JSON HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/KasumiMercury/primind-enqueuer/internal/enqueue/app/enqueue"
	"github.com/KasumiMercury/primind-enqueuer/internal/enqueue/domain/route"
)

// Cloud Tasks caps a task at 1 MiB.
const maxBodyBytes = 1 << 20

type Handler struct {
	useCase enqueue.UseCase
	logger  *slog.Logger
}

func NewHandler(useCase enqueue.UseCase) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  slog.Default().WithGroup("enqueue").WithGroup("httpapi"),
	}
}

// Register mounts the enqueue and admin routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /enqueue", h.Enqueue)
	mux.HandleFunc("POST /config/refresh", h.RefreshConfig)
	mux.HandleFunc("GET /config/services", h.Services)
}

func (h *Handler) Enqueue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body enqueueRequest
	if err := decodeBody(w, r, &body); err != nil {
		h.writeError(w, r, err)

		return
	}

	if err := body.validate(); err != nil {
		h.writeError(w, r, err)

		return
	}

	req := &enqueue.Request{
		Service:         body.Service,
		Payload:         body.Payload,
		DelaySeconds:    body.DelaySeconds,
		DeadlineSeconds: body.DeadlineSeconds,
	}

	// An empty key counts as absent and a fresh one is generated.
	if body.IdempotencyKey != nil {
		req.IdempotencyKey = *body.IdempotencyKey
	}

	resp, err := h.useCase.Enqueue(ctx, req)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	h.writeJSON(w, r, http.StatusOK, enqueueResponse{
		OK:             true,
		Task:           resp.TaskName,
		Service:        resp.Service,
		Queue:          resp.Queue,
		DeadlineS:      resp.DeadlineSeconds,
		IdempotencyKey: resp.IdempotencyKey,
		ScheduleTime:   resp.ScheduleTime,
	})
}

func (h *Handler) RefreshConfig(w http.ResponseWriter, r *http.Request) {
	names, err := h.useCase.RefreshRoutes(r.Context())
	if err != nil {
		h.writeError(w, r, fmt.Errorf("%w: %w", ErrRefreshCanceled, err))

		return
	}

	h.writeJSON(w, r, http.StatusOK, refreshResponse{
		OK:       true,
		Services: nonNil(names),
	})
}

func (h *Handler) Services(w http.ResponseWriter, r *http.Request) {
	info := h.useCase.Services()

	resp := servicesResponse{
		OK:       true,
		Services: nonNil(info.Services),
		State:    string(info.State),
		Source:   info.Source,
	}

	if !info.LoadedAt.IsZero() {
		loadedAt := info.LoadedAt
		resp.LoadedAt = &loadedAt
	}

	h.writeJSON(w, r, http.StatusOK, resp)
}

func (b *enqueueRequest) validate() error {
	if b.Service == "" {
		return fmt.Errorf("%w: service is required", ErrFieldInvalid)
	}

	if b.DelaySeconds != nil && *b.DelaySeconds < 0 {
		return fmt.Errorf("%w: delay_s must be >= 0", ErrFieldInvalid)
	}

	if b.DeadlineSeconds != nil && !route.ValidDeadlineSeconds(*b.DeadlineSeconds) {
		return fmt.Errorf("%w: deadline_s must be in [1,%d]", ErrFieldInvalid, route.MaxDeadlineSeconds)
	}

	return nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	if err := dec.Decode(dst); err != nil {
		var (
			typeErr *json.UnmarshalTypeError
			maxErr  *http.MaxBytesError
		)

		switch {
		case errors.As(err, &maxErr):
			return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxErr.Limit)
		case errors.As(err, &typeErr):
			return fmt.Errorf("%w: %s must be %s", ErrFieldInvalid, typeErr.Field, typeErr.Type)
		default:
			return fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
	}

	if dec.More() {
		return fmt.Errorf("%w: unexpected data after JSON object", ErrMalformedBody)
	}

	return nil
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)

	level := slog.LevelInfo
	if status >= http.StatusInternalServerError {
		level = slog.LevelWarn
	}

	h.logger.Log(r.Context(), level, "request rejected",
		slog.String("event", "http.request.reject"),
		slog.String("code", code),
		slog.Int("status", status),
		slog.String("error", err.Error()),
	)

	h.writeJSON(w, r, status, errorResponse{
		OK:     false,
		Error:  code,
		Detail: err.Error(),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write response", slog.String("error", err.Error()))
	}
}

func nonNil(names []string) []string {
	if names == nil {
		return []string{}
	}

	return names
}
