package adapter

import "errors"

// Sentinel errors mapped from server HTTP statuses. Callers match them with
// errors.Is; the wrapped message carries the server's response body.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrServerUnavailable   = errors.New("server unavailable")
	ErrInternalServerError = errors.New("internal server error")
)
