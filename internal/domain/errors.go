package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrorServiceUnavailable ErrorKind = "SERVICE_UNAVAILABLE"
	ErrorClassification     ErrorKind = "CLASSIFICATION_ERROR"
	ErrorConfiguration      ErrorKind = "CONFIGURATION_ERROR"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionConflict = errors.New("session was modified concurrently")
)

type Error struct {
	Kind   ErrorKind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("domain: %s (%s)", e.Kind, e.Reason)
	}
	return fmt.Sprintf("domain: %s (%s): %v", e.Kind, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func NewError(kind ErrorKind, reason string, err error) *Error {
	return &Error{Kind: kind, Reason: reason, Err: err}
}

// IsKind reports whether any error in err's chain is a *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *Error
	if !errors.As(err, &de) {
		return false
	}
	return de.Kind == kind
}
