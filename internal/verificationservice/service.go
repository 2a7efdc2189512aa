// Package verificationservice runs the identity verification handshake that
// precedes a session.
package verificationservice

import (
	"context"
	"errors"
	"time"

	"github.com/go-petr/snapledger/internal/domain"
	"github.com/go-petr/snapledger/pkg/errorspkg"
	"github.com/go-petr/snapledger/pkg/pinpkg"
	"github.com/go-petr/snapledger/pkg/randompkg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

//go:generate mockgen -source service.go -destination service_mock.go -package verificationservice

// Repo stores pending handshakes.
type Repo interface {
	Create(ctx context.Context, v domain.Verification) error
	Consume(ctx context.Context, id uuid.UUID) (domain.Verification, error)
}

// CodeSender delivers the one time code to the account holder.
type CodeSender interface {
	SendCode(ctx context.Context, accountID, code string) error
}

// Service facilitates verification service layer logic.
//
// Every Start returns its own handshake id, so concurrent logins do not
// replace each other's pending code.
type Service struct {
	repo       Repo
	sender     CodeSender
	ttl        time.Duration
	codeLength int
}

// New returns verification service.
func New(repo Repo, sender CodeSender, ttl time.Duration, codeLength int) *Service {
	return &Service{
		repo:       repo,
		sender:     sender,
		ttl:        ttl,
		codeLength: codeLength,
	}
}

// Start sends a fresh code for accountID and returns the handshake id.
func (s *Service) Start(ctx context.Context, accountID string) (domain.StartedVerification, error) {
	l := zerolog.Ctx(ctx)

	if accountID == "" {
		return domain.StartedVerification{}, domain.ErrInvalidAccountID
	}

	code := randompkg.Digits(s.codeLength)

	hash, err := pinpkg.Hash(code)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.StartedVerification{}, errorspkg.Wrap(errorspkg.ErrInternal, err)
	}

	v := domain.Verification{
		ID:        uuid.New(),
		AccountID: accountID,
		CodeHash:  hash,
		ExpiresAt: time.Now().Add(s.ttl).UTC(),
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return domain.StartedVerification{}, err
	}

	if err := s.sender.SendCode(ctx, accountID, code); err != nil {
		l.Error().Err(err).Str("account_id", accountID).Msg("code delivery failed")
		return domain.StartedVerification{}, err
	}

	return domain.StartedVerification{ID: v.ID, ExpiresAt: v.ExpiresAt}, nil
}

// Complete consumes the handshake and returns the verified account id.
//
// A wrong code also consumes the handshake.
func (s *Service) Complete(ctx context.Context, id uuid.UUID, code string) (string, error) {
	l := zerolog.Ctx(ctx)

	if len(code) != s.codeLength {
		return "", domain.ErrInvalidVerificationCode
	}

	v, err := s.repo.Consume(ctx, id)
	if err != nil {
		return "", err
	}

	if err := pinpkg.Check(code, v.CodeHash); err != nil {
		if !errors.Is(err, pinpkg.ErrMismatchedPin) {
			l.Error().Err(err).Send()
		}

		l.Info().Str("verification_id", id.String()).Msg("verification code mismatch")

		return "", domain.ErrVerificationMismatch
	}

	return v.AccountID, nil
}

// LogSender writes codes to the request log. It stands in for an SMS gateway.
type LogSender struct{}

// SendCode logs the code.
func (LogSender) SendCode(ctx context.Context, accountID, code string) error {
	zerolog.Ctx(ctx).Info().Str("account_id", accountID).Str("code", code).Msg("verification code issued")
	return nil
}
