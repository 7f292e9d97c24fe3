package core

import (
	"context"
	"errors"
	"fmt"
)

// ErrCancelled marks a user-initiated abort. It is never surfaced to the
// user as a failure.
var ErrCancelled = errors.New("evaluation cancelled")

// ErrRequestInFlight is returned when a second evaluation or synthesis is
// started while one is still pending.
var ErrRequestInFlight = errors.New("another request is already in flight")

// ValidationError reports a precondition that was not met before an
// operation; the operation is blocked and no state is changed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NetworkError reports a transport failure or a non-2xx response from the
// scoring service. Message carries the server-provided detail when the
// response body included one.
type NetworkError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Message != "" && e.StatusCode > 0:
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Op, e.Message, e.StatusCode)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsCancelled reports whether err stems from a cancelled request, either via
// the orchestrator's own sentinel or an aborted context.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled)
}
