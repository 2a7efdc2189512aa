package dbpkg

import (
	"database/sql/driver"
	"errors"
	"net"

	"github.com/go-petr/snapledger/pkg/errorspkg"
	"github.com/lib/pq"
)

// SQLSTATE codes the ledger reacts to.
const (
	codeSerializationFailure pq.ErrorCode = "40001"
	codeDeadlockDetected     pq.ErrorCode = "40P01"
	codeUniqueViolation      pq.ErrorCode = "23505"
	classConnection          pq.ErrorClass = "08"
	classInsufficientRes     pq.ErrorClass = "53"
	classOperatorIntervened  pq.ErrorClass = "57"
)

// IsRetryable reports whether err is a transient concurrency conflict after which
// the whole transaction may be replayed.
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	return pqErr.Code == codeSerializationFailure || pqErr.Code == codeDeadlockDetected
}

// IsUnavailable reports whether err means the database could not be reached or
// refused to serve the request.
func IsUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case classConnection, classInsufficientRes, classOperatorIntervened:
			return true
		}
	}

	return false
}

// UniqueViolation returns the violated constraint name when err is a unique violation.
func UniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation {
		return pqErr.Constraint, true
	}

	return "", false
}

// Constraint returns the constraint name reported by err, if any.
func Constraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}

	return ""
}

// ErrUnavailable indicates that the database could not serve the request.
var ErrUnavailable = errorspkg.New(errorspkg.KindUnavailable, "storage unavailable")

// Error classifies an unexpected database error as unavailable or internal,
// keeping the cause reachable for errors.As.
func Error(err error) error {
	if IsUnavailable(err) {
		return errorspkg.Wrap(ErrUnavailable, err)
	}

	return errorspkg.Wrap(errorspkg.ErrInternal, err)
}
