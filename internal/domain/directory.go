package domain

import "github.com/go-petr/snapledger/pkg/errorspkg"

var (
	// ErrInvalidUsername indicates that the username is malformed.
	ErrInvalidUsername = errorspkg.New(errorspkg.KindValidation, "invalid username")
	// ErrUsernameTaken indicates that another account already holds the username.
	ErrUsernameTaken = errorspkg.New(errorspkg.KindConflict, "username taken")
	// ErrUsernameNotFound indicates that no account holds the username.
	ErrUsernameNotFound = errorspkg.New(errorspkg.KindNotFound, "username not found")
)
