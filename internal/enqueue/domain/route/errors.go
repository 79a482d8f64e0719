package route

import "errors"

var (
	ErrServiceNameRequired = errors.New("service name must be specified")
	ErrServiceNameConflict = errors.New("service name is declared more than once")
	ErrQueueIDRequired     = errors.New("queue id must be specified")
	ErrTargetURLInvalid    = errors.New("target URL is invalid")
	ErrAudienceInvalid     = errors.New("audience is invalid")
	ErrDeadlineOutOfRange  = errors.New("deadline must be between 1 and 3600 seconds")
	ErrInvalidDocument     = errors.New("routing document is invalid")
)
