package taskqueue

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

var httpMethods = map[string]taskspb.HttpMethod{
	http.MethodPost:   taskspb.HttpMethod_POST,
	http.MethodPut:    taskspb.HttpMethod_PUT,
	http.MethodPatch:  taskspb.HttpMethod_PATCH,
	http.MethodGet:    taskspb.HttpMethod_GET,
	http.MethodDelete: taskspb.HttpMethod_DELETE,
}

// CloudTasksClient submits push tasks to Google Cloud Tasks. Each call is a
// single attempt; once a task is accepted its delivery retries belong to the
// queue.
type CloudTasksClient struct {
	client *cloudtasks.Client
	logger *slog.Logger
}

type CloudTasksClientConfig struct {
	// EmulatorHost points the client at a local Cloud Tasks emulator over
	// plaintext gRPC without credentials.
	EmulatorHost string
	Options      []option.ClientOption
}

func NewCloudTasksClient(ctx context.Context, cfg CloudTasksClientConfig) (*CloudTasksClient, error) {
	opts := cfg.Options

	if cfg.EmulatorHost != "" {
		opts = append(opts,
			option.WithEndpoint(cfg.EmulatorHost),
			option.WithoutAuthentication(),
			option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
		)
	}

	client, err := cloudtasks.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	return &CloudTasksClient{
		client: client,
		logger: slog.Default().WithGroup("enqueue").WithGroup("cloudtasks"),
	}, nil
}

// CreateTask creates a task in Google Cloud Tasks.
func (c *CloudTasksClient) CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error) {
	taskReq, err := buildCreateTaskRequest(req)
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "creating task in Cloud Tasks",
		slog.String("queue_path", req.QueuePath),
		slog.String("target_url", req.TargetURL),
	)

	createdTask, err := c.client.CreateTask(ctx, taskReq)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to create cloud task",
			slog.String("queue_path", req.QueuePath),
			slog.String("error", err.Error()),
		)

		return nil, fmt.Errorf("%w: %w", ErrCreateTask, err)
	}

	c.logger.DebugContext(ctx, "task created in Cloud Tasks",
		slog.String("task_name", createdTask.GetName()),
	)

	resp := &TaskResponse{Name: createdTask.GetName()}

	if createdTask.GetCreateTime() != nil {
		resp.CreateTime = createdTask.GetCreateTime().AsTime()
	}

	if createdTask.GetScheduleTime() != nil {
		resp.ScheduleTime = createdTask.GetScheduleTime().AsTime()
	}

	return resp, nil
}

func buildCreateTaskRequest(req CreateTaskRequest) (*taskspb.CreateTaskRequest, error) {
	if req.QueuePath == "" {
		return nil, ErrQueuePathRequired
	}

	if req.TargetURL == "" {
		return nil, ErrTargetURLRequired
	}

	method := req.Method
	if method == "" {
		method = http.MethodPost
	}

	pbMethod, ok := httpMethods[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMethodUnsupported, method)
	}

	httpReq := &taskspb.HttpRequest{
		HttpMethod: pbMethod,
		Url:        req.TargetURL,
		Headers:    req.Headers,
		Body:       req.Body,
	}

	if req.OIDCServiceAccount != "" {
		httpReq.AuthorizationHeader = &taskspb.HttpRequest_OidcToken{
			OidcToken: &taskspb.OidcToken{
				ServiceAccountEmail: req.OIDCServiceAccount,
				Audience:            req.OIDCAudience,
			},
		}
	}

	task := &taskspb.Task{
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: httpReq,
		},
	}

	if req.ScheduleTime != nil {
		task.ScheduleTime = timestamppb.New(*req.ScheduleTime)
	}

	if req.DispatchDeadline > 0 {
		task.DispatchDeadline = durationpb.New(req.DispatchDeadline)
	}

	return &taskspb.CreateTaskRequest{
		Parent: req.QueuePath,
		Task:   task,
	}, nil
}

// Close closes the Cloud Tasks client.
func (c *CloudTasksClient) Close() error {
	return c.client.Close()
}
