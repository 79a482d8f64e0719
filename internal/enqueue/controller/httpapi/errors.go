package httpapi

import (
	"errors"
	"net/http"

	"github.com/KasumiMercury/primind-enqueuer/internal/enqueue/app/enqueue"
	"github.com/KasumiMercury/primind-enqueuer/internal/enqueue/infra/routecache"
)

var (
	ErrMalformedBody   = errors.New("request body is not valid JSON")
	ErrBodyTooLarge    = errors.New("request body is too large")
	ErrFieldInvalid    = errors.New("request field is invalid")
	ErrRefreshCanceled = errors.New("routing refresh did not complete")
)

// statusFor maps an error to its HTTP status and machine-readable code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrMalformedBody):
		return http.StatusBadRequest, "malformed_body"
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge, "body_too_large"
	case errors.Is(err, ErrFieldInvalid), errors.Is(err, enqueue.ErrInvalidRequest), errors.Is(err, enqueue.ErrRequestNil):
		return http.StatusUnprocessableEntity, "invalid_request"
	case errors.Is(err, enqueue.ErrUnknownService):
		return http.StatusUnprocessableEntity, "unknown_service"
	case errors.Is(err, enqueue.ErrBackendUnavailable):
		return http.StatusInternalServerError, "backend_unavailable"
	case errors.Is(err, routecache.ErrRefreshAborted), errors.Is(err, ErrRefreshCanceled):
		return http.StatusServiceUnavailable, "refresh_aborted"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
