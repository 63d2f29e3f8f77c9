package domain

import "errors"

// Sentinel errors used throughout the application.
// Handlers translate these to HTTP status codes via a single mapError function.
var (
	ErrNotFound          = errors.New("not found")
	ErrMethodNotAllowed  = errors.New("method not allowed")
	ErrStartup           = errors.New("server startup error")
	ErrIndexUnavailable  = errors.New("index document unavailable")
	ErrInvalidEncoding   = errors.New("index document is not valid UTF-8")
	ErrRateLimited       = errors.New("rate limit exceeded")
	ErrHealthCheckFailed = errors.New("health check failed")
)
