package service

import "errors"

// Error kinds surfaced by AuthService. Handlers map these to HTTP
// status codes; anything not matching falls through as an internal
// error. Wrapped with %w so errors.Is works across layers.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("invalid request")
	ErrNotFound     = errors.New("not found")
	ErrInternal     = errors.New("internal error")
)
