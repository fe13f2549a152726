package ratelimit

import "fmt"

// InvalidArgumentError reports an invalid construction parameter.
// It is returned by New when the limit or window is not positive;
// no limiter instance is produced in that case.
type InvalidArgumentError struct {
	// Field is the name of the offending parameter ("limit" or "window").
	Field string

	// Message describes the constraint that was violated.
	Message string
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Message)
}
