package enqueue

import "errors"

var (
	ErrRequestNil         = errors.New("request is required")
	ErrInvalidRequest     = errors.New("invalid enqueue request")
	ErrUnknownService     = errors.New("unknown service")
	ErrBackendUnavailable = errors.New("task queue backend unavailable")
)
