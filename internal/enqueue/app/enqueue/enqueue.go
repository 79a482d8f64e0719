// Package enqueue turns a validated enqueue request into a single push task
// against the task queue backend.
package enqueue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-enqueuer/internal/enqueue/domain/route"
	"github.com/KasumiMercury/primind-enqueuer/internal/enqueue/infra/clock"
	"github.com/KasumiMercury/primind-enqueuer/internal/enqueue/infra/routecache"
	"github.com/KasumiMercury/primind-enqueuer/internal/enqueue/infra/taskqueue"
	"github.com/KasumiMercury/primind-enqueuer/internal/observability/logging"
	"github.com/KasumiMercury/primind-enqueuer/internal/observability/metrics"
	"github.com/KasumiMercury/primind-enqueuer/internal/observability/tracing"
	"github.com/google/uuid"
)

//go:generate mockgen -source=enqueue.go -destination=mock_enqueue.go -package=enqueue

const (
	DefaultSubmitTimeout = 30 * time.Second

	HeaderContentType    = "Content-Type"
	HeaderIdempotencyKey = "X-Idempotency-Key"
	HeaderRequestID      = "X-Request-Id"
)

// RoutingProvider is the read side of the routing cache.
type RoutingProvider interface {
	Resolve(ctx context.Context, name string) (route.Entry, error)
	Refresh(ctx context.Context) routecache.RefreshResult
	Info() routecache.Info
}

type Request struct {
	Service        string
	Payload        json.RawMessage
	IdempotencyKey string
	// nil means dispatch immediately.
	DelaySeconds *int
	// nil or out of range falls back to the route default.
	DeadlineSeconds *int
}

type Response struct {
	TaskName        string
	Service         string
	Queue           string
	DeadlineSeconds int
	IdempotencyKey  string
	ScheduleTime    *time.Time
}

type UseCase interface {
	Enqueue(ctx context.Context, req *Request) (*Response, error)
	RefreshRoutes(ctx context.Context) ([]string, error)
	Services() routecache.Info
}

type Config struct {
	ProjectID            string
	Location             string
	CallerServiceAccount string
	SubmitTimeout        time.Duration
}

type Handler struct {
	routes        RoutingProvider
	queue         taskqueue.Client
	clock         clock.Clock
	newKey        func() string
	projectID     string
	location      string
	callerSA      string
	submitTimeout time.Duration
	logger        *slog.Logger
}

type Option func(*Handler)

func WithClock(c clock.Clock) Option {
	return func(h *Handler) {
		h.clock = c
	}
}

// WithKeyGenerator replaces the idempotency key generator.
func WithKeyGenerator(fn func() string) Option {
	return func(h *Handler) {
		h.newKey = fn
	}
}

func NewHandler(routes RoutingProvider, queue taskqueue.Client, cfg Config, opts ...Option) *Handler {
	submitTimeout := cfg.SubmitTimeout
	if submitTimeout <= 0 {
		submitTimeout = DefaultSubmitTimeout
	}

	h := &Handler{
		routes:        routes,
		queue:         queue,
		clock:         &clock.RealClock{},
		newKey:        uuid.NewString,
		projectID:     cfg.ProjectID,
		location:      cfg.Location,
		callerSA:      cfg.CallerServiceAccount,
		submitTimeout: submitTimeout,
		logger:        slog.Default().WithGroup("enqueue").WithGroup("forwarder"),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

func (h *Handler) Enqueue(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, ErrRequestNil
	}

	service := strings.TrimSpace(req.Service)
	if service == "" {
		return nil, fmt.Errorf("%w: service is required", ErrInvalidRequest)
	}

	if req.DelaySeconds != nil && *req.DelaySeconds < 0 {
		return nil, fmt.Errorf("%w: delay_s must not be negative", ErrInvalidRequest)
	}

	body, err := encodePayload(req.Payload)
	if err != nil {
		return nil, err
	}

	entry, err := h.routes.Resolve(ctx, service)
	if err != nil {
		h.logger.InfoContext(ctx, "enqueue rejected for unknown service",
			slog.String("event", "enqueue.reject"),
			slog.String("service", service),
		)
		metrics.EnqueueRequests.WithLabelValues("unknown", "unknown_service").Inc()

		return nil, fmt.Errorf("%w: %q", ErrUnknownService, service)
	}

	idemKey := req.IdempotencyKey
	if idemKey == "" {
		idemKey = h.newKey()
	}

	deadline := entry.DefaultDeadlineSeconds()
	if req.DeadlineSeconds != nil && route.ValidDeadlineSeconds(*req.DeadlineSeconds) {
		deadline = *req.DeadlineSeconds
	}

	taskReq := taskqueue.CreateTaskRequest{
		QueuePath:          taskqueue.QueuePath(h.projectID, h.location, entry.QueueID()),
		TargetURL:          entry.TargetURL(),
		Method:             http.MethodPost,
		Headers:            h.headers(ctx, idemKey),
		Body:               body,
		OIDCServiceAccount: h.callerSA,
		OIDCAudience:       entry.Audience(),
		DispatchDeadline:   time.Duration(deadline) * time.Second,
	}

	if req.DelaySeconds != nil && *req.DelaySeconds > 0 {
		at := h.clock.Now().Add(time.Duration(*req.DelaySeconds) * time.Second)
		taskReq.ScheduleTime = &at
	}

	task, err := h.submit(ctx, entry.QueueID(), taskReq)
	if err != nil {
		h.logger.WarnContext(ctx, "task submission failed",
			slog.String("event", "enqueue.fail"),
			slog.String("service", service),
			slog.String("queue", entry.QueueID()),
			slog.String("error", err.Error()),
		)
		metrics.EnqueueRequests.WithLabelValues(service, "backend_error").Inc()

		return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}

	h.logger.InfoContext(ctx, "task enqueued",
		slog.String("event", "enqueue.finish"),
		slog.String("service", service),
		slog.String("queue", entry.QueueID()),
		slog.String("task_name", task.Name),
		slog.String("idempotency_key", idemKey),
		slog.Int("deadline_s", deadline),
	)
	metrics.EnqueueRequests.WithLabelValues(service, "ok").Inc()

	return &Response{
		TaskName:        task.Name,
		Service:         service,
		Queue:           entry.QueueID(),
		DeadlineSeconds: deadline,
		IdempotencyKey:  idemKey,
		ScheduleTime:    taskReq.ScheduleTime,
	}, nil
}

// submit makes one backend call. It is detached from ctx so an aborted
// inbound request does not cancel a task creation that is already underway.
func (h *Handler) submit(ctx context.Context, queueID string, req taskqueue.CreateTaskRequest) (*taskqueue.TaskResponse, error) {
	submitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.submitTimeout)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.TaskCreateDuration.WithLabelValues(queueID).Observe(time.Since(start).Seconds())
	}()

	return h.queue.CreateTask(submitCtx, req)
}

func (h *Handler) headers(ctx context.Context, idemKey string) map[string]string {
	headers := map[string]string{
		HeaderContentType:    "application/json",
		HeaderIdempotencyKey: idemKey,
	}

	if reqID := logging.RequestIDFromContext(ctx); reqID != "" {
		headers[HeaderRequestID] = reqID
	}

	tracing.InjectToMap(ctx, headers)

	return headers
}

// RefreshRoutes reloads the routing table regardless of its age and returns
// the service names held afterwards. A failed reload is reported but the
// previously held names are still returned.
func (h *Handler) RefreshRoutes(ctx context.Context) ([]string, error) {
	res := h.routes.Refresh(ctx)

	names := h.routes.Info().Services

	switch res.Outcome {
	case routecache.OutcomePrimary, routecache.OutcomeFresh:
		return names, nil
	case routecache.OutcomeAborted:
		return names, res.Err
	default:
		h.logger.WarnContext(ctx, "manual routing refresh degraded",
			slog.String("event", "routing.manual_refresh.degraded"),
			slog.String("outcome", string(res.Outcome)),
			slog.String("error", errString(res.Err)),
		)

		return names, nil
	}
}

func (h *Handler) Services() routecache.Info {
	return h.routes.Info()
}

// encodePayload accepts a JSON object (or nothing, meaning {}) and returns
// its compact encoding.
func encodePayload(raw json.RawMessage) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []byte("{}"), nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: payload must be a JSON object", ErrInvalidRequest)
		}

		return nil, fmt.Errorf("%w: payload is not valid JSON: %v", ErrInvalidRequest, err)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, fmt.Errorf("%w: payload is not valid JSON: %v", ErrInvalidRequest, err)
	}

	return buf.Bytes(), nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}

	return err.Error()
}
