package store

import (
	"errors"
	"fmt"
)

const (
	// KindConnectivity marks a backend that could not be reached at all:
	// dial failures, timeouts, a missing database file. Surfaced as a
	// top-level cannot-load-data condition.
	KindConnectivity ErrorKind = iota + 1
	// KindRejected marks a write the backend refused: policy denial, unknown
	// id, constraint violation. Handled locally by rolling back the
	// optimistic change.
	KindRejected
)

type (
	ErrorKind int

	// Error is the failure shape every adapter method reports.
	Error struct {
		Kind    ErrorKind
		Op      string // e.g. "remote.AddClient"
		Message string
		Err     error // underlying cause, may be nil
	}
)

func (k ErrorKind) String() string {
	switch k {
	case KindConnectivity:
		return "connectivity"
	case KindRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Connectivity wraps err as a connectivity failure.
func Connectivity(op, message string, err error) *Error {
	return &Error{Kind: KindConnectivity, Op: op, Message: message, Err: err}
}

// Rejected wraps err as a write rejection.
func Rejected(op, message string, err error) *Error {
	return &Error{Kind: KindRejected, Op: op, Message: message, Err: err}
}

// IsConnectivity reports whether err is a connectivity failure.
func IsConnectivity(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindConnectivity
}

// IsRejected reports whether err is a write rejection.
func IsRejected(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindRejected
}
