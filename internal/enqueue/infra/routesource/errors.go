package routesource

import "errors"

var (
	ErrDocumentNotFound  = errors.New("routing document not found")
	ErrDocumentTooLarge  = errors.New("routing document exceeds size limit")
	ErrSourceUnavailable = errors.New("routing source unavailable")
	ErrInvalidEnvValue   = errors.New("invalid routing environment value")
)
