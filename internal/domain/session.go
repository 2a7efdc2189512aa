package domain

import (
	"time"

	"github.com/go-petr/snapledger/pkg/errorspkg"
	"github.com/google/uuid"
)

var (
	// ErrBlockedSession indicates that the session is blocked.
	ErrBlockedSession = errorspkg.New(errorspkg.KindPermissionDenied, "blocked session")
	// ErrMismatchedRefreshToken indicates mismatch between the given token and the session token.
	ErrMismatchedRefreshToken = errorspkg.New(errorspkg.KindPermissionDenied, "mismatched session token")
	// ErrInvalidSessionAccount indicates that the session belongs to another account.
	ErrInvalidSessionAccount = errorspkg.New(errorspkg.KindPermissionDenied, "incorrect session account")
	// ErrExpiredSession indicates that the expired session.
	ErrExpiredSession = errorspkg.New(errorspkg.KindPermissionDenied, "expired session")
	// ErrSessionNotFound indicates that the session is not found.
	ErrSessionNotFound = errorspkg.New(errorspkg.KindNotFound, "session not found")
	// ErrInvalidRefreshToken indicates that the refresh token cannot be verified.
	ErrInvalidRefreshToken = errorspkg.New(errorspkg.KindPermissionDenied, "invalid refresh token")
)

// Session holds refresh token data for an account.
type Session struct {
	ID           uuid.UUID `json:"id"`
	AccountID    string    `json:"account_id"`
	RefreshToken string    `json:"refresh_token"`
	UserAgent    string    `json:"user_agent"`
	ClientIP     string    `json:"client_ip"`
	IsBlocked    bool      `json:"is_blocked"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateSessionParams holds data nedeed for Session creation.
type CreateSessionParams struct {
	ID           uuid.UUID `json:"id"`
	AccountID    string    `json:"account_id"`
	RefreshToken string    `json:"refresh_token"`
	UserAgent    string    `json:"user_agent"`
	ClientIP     string    `json:"client_ip"`
	IsBlocked    bool      `json:"is_blocked"`
	ExpiresAt    time.Time `json:"expires_at"`
}
