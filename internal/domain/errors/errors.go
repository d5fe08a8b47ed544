package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrAccessDenied    = errors.New("access denied")
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("conflict")
	ErrVersionConflict = errors.New("aggregate version conflict")
)

// GatewayError wraps a payment gateway failure, preserving the gateway's
// reason for the caller. Gateway failures are never silently swallowed.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Gateway wraps err as a GatewayError for the named operation.
func Gateway(op string, err error) error {
	return &GatewayError{Op: op, Err: err}
}
