package taskqueue

import "errors"

var (
	ErrQueuePathRequired = errors.New("queue path is required")
	ErrTargetURLRequired = errors.New("target URL is required")
	ErrMethodUnsupported = errors.New("http method is not supported")
	ErrCreateTask        = errors.New("failed to create task")
)
