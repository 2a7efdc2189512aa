package domain

import (
	"time"

	"github.com/go-petr/snapledger/pkg/errorspkg"
	"github.com/google/uuid"
)

var (
	// ErrVerificationNotFound indicates an unknown, expired or already used verification.
	ErrVerificationNotFound = errorspkg.New(errorspkg.KindNotFound, "verification not found or expired")
	// ErrVerificationMismatch indicates a wrong verification code.
	ErrVerificationMismatch = errorspkg.New(errorspkg.KindPermissionDenied, "verification code mismatch")
	// ErrInvalidVerificationCode indicates a malformed verification code.
	ErrInvalidVerificationCode = errorspkg.New(errorspkg.KindValidation, "invalid verification code")
)

// Verification is a pending identity verification handshake.
//
// It is scoped to the caller that started it and expires on its own.
type Verification struct {
	ID        uuid.UUID `json:"id"`
	AccountID string    `json:"account_id"`
	CodeHash  string    `json:"code_hash"`
	ExpiresAt time.Time `json:"expires_at"`
}

// StartedVerification is returned to the caller that started a verification.
type StartedVerification struct {
	ID        uuid.UUID `json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}
