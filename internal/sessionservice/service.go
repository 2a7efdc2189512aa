// Package sessionservice manages business logic layer of sessions.
package sessionservice

import (
	"context"
	"time"

	"github.com/go-petr/snapledger/internal/domain"
	"github.com/go-petr/snapledger/pkg/configpkg"
	"github.com/go-petr/snapledger/pkg/tokenpkg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by session service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package sessionservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateSessionParams) (domain.Session, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Session, error)
	Block(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// Service facilitates session service layer logic.
type Service struct {
	repo       Repo
	tokenMaker tokenpkg.Maker
	config     configpkg.Config
}

// New returns session service.
func New(repo Repo, config configpkg.Config, tokenMaker tokenpkg.Maker) (*Service, error) {
	return &Service{
		repo:       repo,
		tokenMaker: tokenMaker,
		config:     config,
	}, nil
}

// Create issues an access token and a refresh token for arg.AccountID and
// stores the refresh token as a session.
func (s *Service) Create(ctx context.Context, arg domain.CreateSessionParams) (string, time.Time, domain.Session, error) {
	l := zerolog.Ctx(ctx)

	accessToken, accessPayload, err := s.tokenMaker.CreateToken(arg.AccountID, s.config.AccessTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", time.Time{}, domain.Session{}, err
	}

	refreshToken, refreshPayload, err := s.tokenMaker.CreateToken(arg.AccountID, s.config.RefreshTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", time.Time{}, domain.Session{}, err
	}

	arg.ID = refreshPayload.ID
	arg.RefreshToken = refreshToken
	arg.ExpiresAt = refreshPayload.ExpiredAt

	sess, err := s.repo.Create(ctx, arg)
	if err != nil {
		return "", time.Time{}, domain.Session{}, err
	}

	return accessToken, accessPayload.ExpiredAt, sess, nil
}

// RenewAccessToken returns a new access token for a valid refresh token.
func (s *Service) RenewAccessToken(ctx context.Context, refreshToken string) (string, time.Time, error) {
	l := zerolog.Ctx(ctx)

	refreshPayload, err := s.tokenMaker.VerifyToken(refreshToken)
	if err != nil {
		l.Info().Err(err).Send()
		return "", time.Time{}, err
	}

	sess, err := s.repo.Get(ctx, refreshPayload.ID)
	if err != nil {
		return "", time.Time{}, err
	}

	switch {
	case sess.IsBlocked:
		return "", time.Time{}, domain.ErrBlockedSession
	case sess.AccountID != refreshPayload.AccountID:
		return "", time.Time{}, domain.ErrInvalidSessionAccount
	case sess.RefreshToken != refreshToken:
		return "", time.Time{}, domain.ErrMismatchedRefreshToken
	case time.Now().After(sess.ExpiresAt):
		return "", time.Time{}, domain.ErrExpiredSession
	}

	accessToken, accessPayload, err := s.tokenMaker.CreateToken(refreshPayload.AccountID, s.config.AccessTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", time.Time{}, err
	}

	return accessToken, accessPayload.ExpiredAt, nil
}

// Revoke blocks the session behind refreshToken. Revoking a blocked session is a no-op.
func (s *Service) Revoke(ctx context.Context, refreshToken string) error {
	l := zerolog.Ctx(ctx)

	refreshPayload, err := s.tokenMaker.VerifyToken(refreshToken)
	if err != nil {
		l.Info().Err(err).Send()
		return err
	}

	sess, err := s.repo.Get(ctx, refreshPayload.ID)
	if err != nil {
		return err
	}

	switch {
	case sess.AccountID != refreshPayload.AccountID:
		return domain.ErrInvalidSessionAccount
	case sess.RefreshToken != refreshToken:
		return domain.ErrMismatchedRefreshToken
	case sess.IsBlocked:
		return nil
	}

	if err := s.repo.Block(ctx, sess.ID); err != nil {
		return err
	}

	l.Info().Str("session_id", sess.ID.String()).Str("account_id", sess.AccountID).Msg("session revoked")

	return nil
}

// PruneExpired deletes sessions whose refresh token has expired.
func (s *Service) PruneExpired(ctx context.Context) (int64, error) {
	l := zerolog.Ctx(ctx)

	n, err := s.repo.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	l.Info().Int64("deleted", n).Msg("expired sessions pruned")

	return n, nil
}
