// Package directoryservice maps usernames to account ids.
package directoryservice

import (
	"context"
	"errors"

	"github.com/go-petr/snapledger/internal/domain"
	"github.com/go-petr/snapledger/pkg/validpkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by directory service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package directoryservice
type Repo interface {
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
	SetUsername(ctx context.Context, id, username string) (domain.Account, error)
}

// Service facilitates directory service layer logic.
//
// Uniqueness is enforced by the store when the username is written, not by the lookup
// that precedes it.
type Service struct {
	repo Repo
}

// New returns directory service.
func New(repo Repo) *Service {
	return &Service{repo: repo}
}

// Register assigns username to the account.
//
// Registering the username the account already holds succeeds without a write.
func (s *Service) Register(ctx context.Context, accountID, username string) error {
	l := zerolog.Ctx(ctx)

	if !validpkg.ValidUsername(username) {
		return domain.ErrInvalidUsername
	}

	holder, err := s.repo.GetByUsername(ctx, username)

	switch {
	case err == nil && holder.ID == accountID:
		return nil
	case err == nil:
		l.Info().Str("username", username).Msg("username taken")
		return domain.ErrUsernameTaken
	case !errors.Is(err, domain.ErrUsernameNotFound):
		return err
	}

	if _, err := s.repo.SetUsername(ctx, accountID, username); err != nil {
		return err
	}

	l.Info().Str("account_id", accountID).Str("username", username).Msg("username registered")

	return nil
}

// Resolve returns the id of the account holding username. The match is exact
// and case-sensitive.
func (s *Service) Resolve(ctx context.Context, username string) (string, error) {
	if !validpkg.ValidUsername(username) {
		return "", domain.ErrUsernameNotFound
	}

	account, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	return account.ID, nil
}
