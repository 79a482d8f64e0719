package routecache

import "errors"

var (
	ErrServiceNotFound         = errors.New("service not found in routing table")
	ErrConfigSourceUnavailable = errors.New("routing configuration source unavailable")
	ErrPrimarySourceRequired   = errors.New("primary routing source is required")
	ErrTTLInvalid              = errors.New("cache TTL must be positive")
	ErrRefreshAborted          = errors.New("refresh wait aborted")
)
