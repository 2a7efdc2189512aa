// Package errorspkg provides common app errors.
package errorspkg

import (
	"errors"
	"fmt"
)

// Kind classifies an error so callers can react to it without string matching.
type Kind uint8

// Error kinds recognized across the application.
const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindInsufficientFunds
	KindUnavailable
	KindPermissionDenied
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInsufficientFunds:
		return "insufficient_funds"
	case KindUnavailable:
		return "unavailable"
	case KindPermissionDenied:
		return "permission_denied"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "internal"
	}
}

// Error is an application error carrying its Kind.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// New returns an error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// ErrInternal indicates internal server error.
var ErrInternal = New(KindInternal, "internal")

// KindOf reports the kind of err. Errors not created by this package are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindInternal
}

// Wrap returns an error matching both the sentinel and the cause with errors.Is
// and errors.As. The sentinel decides the kind.
func Wrap(sentinel *Error, cause error) error {
	return fmt.Errorf("%w: %w", sentinel, cause)
}
