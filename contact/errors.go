package contact

import (
	"errors"
	"fmt"
)

// ErrInFlight is returned when a submission is attempted while another one
// from the same form is still being sent.
var ErrInFlight = errors.New("contact: submission already in flight")

// ValidationError reports a missing or malformed field. No send is attempted.
type ValidationError struct {
	Field  string // "name", "email" or "message"
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("contact: %s %s", e.Field, e.Reason)
}

// NetworkError wraps a delivery failure. The form keeps its fields so the
// visitor can retry.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("contact: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
