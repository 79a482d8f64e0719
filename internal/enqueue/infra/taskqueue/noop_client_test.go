package taskqueue

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNoopClientCreateTask(t *testing.T) {
	c := NewNoopClient()
	queuePath := QueuePath("p", "us-central1", "queue-brain")

	first, err := c.CreateTask(context.Background(), CreateTaskRequest{
		QueuePath: queuePath,
		TargetURL: "https://brain.example.com/process",
		Body:      []byte(`{}`),
	})
	if err != nil {
		t.Fatalf("CreateTask() unexpected error: %v", err)
	}

	if !strings.HasPrefix(first.Name, queuePath+"/tasks/") {
		t.Fatalf("Name = %q, want prefix %q", first.Name, queuePath+"/tasks/")
	}

	if !first.ScheduleTime.Equal(first.CreateTime) {
		t.Fatalf("immediate task should be scheduled at create time, got %v and %v", first.ScheduleTime, first.CreateTime)
	}

	at := time.Date(2025, 3, 1, 12, 0, 30, 0, time.UTC)

	second, err := c.CreateTask(context.Background(), CreateTaskRequest{
		QueuePath:    queuePath,
		TargetURL:    "https://brain.example.com/process",
		ScheduleTime: &at,
	})
	if err != nil {
		t.Fatalf("CreateTask() unexpected error: %v", err)
	}

	if second.Name == first.Name {
		t.Fatalf("expected distinct task names, both were %q", first.Name)
	}

	if !second.ScheduleTime.Equal(at) {
		t.Fatalf("ScheduleTime = %v, want %v", second.ScheduleTime, at)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close() unexpected error: %v", err)
	}
}

func TestNoopClientRequiresQueuePath(t *testing.T) {
	_, err := NewNoopClient().CreateTask(context.Background(), CreateTaskRequest{TargetURL: "https://w.example.com"})
	if !errors.Is(err, ErrQueuePathRequired) {
		t.Fatalf("CreateTask() error = %v, want %v", err, ErrQueuePathRequired)
	}
}
