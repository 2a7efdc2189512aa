package domain

import "github.com/go-petr/snapledger/pkg/errorspkg"

var (
	// ErrInvalidPinFormat indicates that the PIN is not exactly 4 digits.
	ErrInvalidPinFormat = errorspkg.New(errorspkg.KindValidation, "pin must be exactly 4 digits")
	// ErrPinAlreadySet indicates that the account already has a PIN.
	ErrPinAlreadySet = errorspkg.New(errorspkg.KindConflict, "pin already set")
	// ErrPinDenied indicates that the PIN check failed.
	ErrPinDenied = errorspkg.New(errorspkg.KindPermissionDenied, "pin denied")
	// ErrPinLocked indicates too many failed PIN checks in a row.
	ErrPinLocked = errorspkg.New(errorspkg.KindPermissionDenied, "pin locked, try again later")
)
