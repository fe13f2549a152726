package client

import (
	"fmt"
	"time"
)

// APIError represents an error response from the CRPT API.
// It includes the HTTP status code and the response body.
type APIError struct {
	// StatusCode is the HTTP status code returned by the API
	StatusCode int

	// Message is the response body returned with the error
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("crpt api error (status %d): %s", e.StatusCode, e.Message)
}

// AuthError represents an authentication failure.
// This occurs when the API rejects the token or signature (HTTP 401 or 403).
type AuthError struct {
	// StatusCode is the HTTP status code (401 or 403)
	StatusCode int

	// Message is the error message from the API
	Message string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("crpt api authentication failed (status %d): %s", e.StatusCode, e.Message)
}

// RateLimitError represents a server-side rate limit rejection (HTTP 429).
// It includes the retry-after duration if the API provided one.
//
// Note that this is distinct from client-side admission: the client blocks
// locally to stay under its configured limit, so a 429 indicates the server
// enforces a tighter limit than the client was configured with.
type RateLimitError struct {
	// RetryAfter is the duration to wait before retrying (if provided)
	RetryAfter time.Duration

	// Message is the error message from the API
	Message string
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("crpt api rate limit exceeded (retry after %s): %s", e.RetryAfter, e.Message)
	}
	return fmt.Sprintf("crpt api rate limit exceeded: %s", e.Message)
}

// TransportError represents a network-level failure performing the request.
type TransportError struct {
	// Cause is the underlying transport error
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("crpt api request failed: %v", e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ConfigError represents an invalid client configuration.
type ConfigError struct {
	// Field is the configuration field that is invalid
	Field string

	// Message describes the configuration error
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("client configuration error for field %q: %s", e.Field, e.Message)
}
