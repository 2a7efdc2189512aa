// Package domain provides defenitions of all entities.
package domain

import (
	"time"

	"github.com/go-petr/snapledger/pkg/dbpkg"
	"github.com/go-petr/snapledger/pkg/errorspkg"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errorspkg.New(errorspkg.KindNotFound, "account not found")
	// ErrAccountAlreadyExists indicates that the account with the given id already exists.
	ErrAccountAlreadyExists = errorspkg.New(errorspkg.KindConflict, "account already exists")
	// ErrInvalidAccountID indicates an empty or malformed account id.
	ErrInvalidAccountID = errorspkg.New(errorspkg.KindValidation, "invalid account id")
	// ErrInvalidDisplayName indicates an empty or too long display name.
	ErrInvalidDisplayName = errorspkg.New(errorspkg.KindValidation, "invalid display name")
	// ErrStorageUnavailable indicates that the storage could not serve the request.
	ErrStorageUnavailable = dbpkg.ErrUnavailable
)

// Account holds the balance and profile of an account holder.
//
// Balance is in the smallest currency unit and is never negative.
type Account struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Balance     int64     `json:"balance"`
	PinHash     string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasPin reports whether the account has a PIN set.
func (a Account) HasPin() bool {
	return a.PinHash != ""
}

// CreateAccountParams is the input data to create an account.
type CreateAccountParams struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Balance     int64  `json:"balance"`
}

// Profile is Account data excluding balance and PIN data.
type Profile struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	HasPin      bool      `json:"has_pin"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewProfile returns the account with removed sensitive data.
func NewProfile(a Account) Profile {
	return Profile{
		ID:          a.ID,
		Username:    a.Username,
		DisplayName: a.DisplayName,
		HasPin:      a.HasPin(),
		CreatedAt:   a.CreatedAt,
	}
}
