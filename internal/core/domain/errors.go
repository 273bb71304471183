// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so the HTTP boundary can map them to
// transport status codes without string matching.
type ErrorKind string

const (
	// KindInvalidRequest marks structurally invalid input the caller must fix.
	KindInvalidRequest ErrorKind = "invalid_request"
	// KindNotFound marks a lookup that matched nothing.
	KindNotFound ErrorKind = "not_found"
	// KindForbidden marks an operation attempted by a non-owner.
	KindForbidden ErrorKind = "forbidden"
	// KindUnavailable marks a storage or dependency failure. Never retried
	// internally; the caller owns retry policy.
	KindUnavailable ErrorKind = "unavailable"
	// KindInternal marks everything else.
	KindInternal ErrorKind = "internal"
)

// Error is the structured error surfaced by the core packages.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds an Error wrapping an underlying cause.
func E(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the ErrorKind from err, defaulting to KindInternal.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
