package taskqueue

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -source=taskqueue.go -destination=mock_taskqueue.go -package=taskqueue

type Client interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error)
	Close() error
}

// CreateTaskRequest is a fully formed push task. ScheduleTime nil means
// dispatch immediately; a zero DispatchDeadline leaves the backend default.
type CreateTaskRequest struct {
	QueuePath          string
	TargetURL          string
	Method             string
	Headers            map[string]string
	Body               []byte
	OIDCServiceAccount string
	OIDCAudience       string
	ScheduleTime       *time.Time
	DispatchDeadline   time.Duration
}

type TaskResponse struct {
	Name         string
	CreateTime   time.Time
	ScheduleTime time.Time
}

func QueuePath(projectID, locationID, queueID string) string {
	return fmt.Sprintf("projects/%s/locations/%s/queues/%s", projectID, locationID, queueID)
}
