package config

import "errors"

var (
	ErrProjectIDMissing        = errors.New("project id is required")
	ErrRegionMissing           = errors.New("tasks region is required")
	ErrCallerSAMissing         = errors.New("caller service account is required")
	ErrBackendInvalid          = errors.New("tasks backend is invalid")
	ErrRoutingSourceInvalid    = errors.New("routing source is invalid")
	ErrRoutingConfigURIInvalid = errors.New("routing config URI is invalid")
	ErrFallbackPathMissing     = errors.New("routing fallback path is required")
	ErrDurationInvalid         = errors.New("duration must be at least 1s")
	ErrPortInvalid             = errors.New("port is invalid")
	ErrEnvFileLoad             = errors.New("failed to load env file")
)
