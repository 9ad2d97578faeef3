// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Common sentinels across storage/gateway/api layers.
var (
	// ErrNotFound indicates the requested key or entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the backend rejected the bearer token (401)
	// or a protected command ran without a session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrMissingProfileID indicates an identity header was required but the
	// session carries no profile id. Raised before any network I/O.
	ErrMissingProfileID = errors.New("profile id not found in session")

	// ErrNoToken indicates a login response that carried no access token.
	ErrNoToken = errors.New("no token received from server")
)

// HTTPError is a non-2xx response surfaced to the caller untouched.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("request failed (status %d): %s", e.StatusCode, e.Message)
}

// Is lets a 401 match ErrUnauthorized.
func (e *HTTPError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}
