package taskqueue

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// NoopClient accepts every task without contacting a backend. It is used for
// local development.
type NoopClient struct {
	seq    atomic.Uint64
	logger *slog.Logger
}

func NewNoopClient() *NoopClient {
	return &NoopClient{
		logger: slog.Default().WithGroup("enqueue").WithGroup("noopqueue"),
	}
}

func (c *NoopClient) CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error) {
	if req.QueuePath == "" {
		return nil, ErrQueuePathRequired
	}

	name := fmt.Sprintf("%s/tasks/noop-%d", req.QueuePath, c.seq.Add(1))
	now := time.Now().UTC()

	scheduled := now
	if req.ScheduleTime != nil {
		scheduled = *req.ScheduleTime
	}

	c.logger.InfoContext(ctx, "task accepted by noop queue",
		slog.String("task_name", name),
		slog.String("target_url", req.TargetURL),
		slog.Int("body_bytes", len(req.Body)),
	)

	return &TaskResponse{
		Name:         name,
		CreateTime:   now,
		ScheduleTime: scheduled,
	}, nil
}

func (c *NoopClient) Close() error {
	return nil
}
