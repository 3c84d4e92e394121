package api

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrUnauthorized is returned when the backend rejects the bearer
	// token with HTTP 401. This is the only failure treated as an
	// expired session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials is returned when a login attempt is
	// rejected by the backend.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnavailable covers every other failure: transport errors,
	// timeouts, 5xx responses and malformed payloads. Callers must
	// treat it as "not logged in", never as "session expired".
	ErrUnavailable = errors.New("api unavailable")
)

// APIError carries an error payload returned by the backend.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

// Error complies with the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: HTTP %d: %s", e.StatusCode, e.Message)
}

// Unwrap classifies the error into the package taxonomy so callers can
// use errors.Is against the sentinels.
func (e *APIError) Unwrap() error {
	if e.StatusCode == 401 {
		return ErrUnauthorized
	}
	return ErrUnavailable
}
