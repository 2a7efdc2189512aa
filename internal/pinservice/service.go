// Package pinservice verifies account PINs before sensitive operations.
package pinservice

import (
	"context"
	"errors"

	"github.com/go-petr/snapledger/internal/domain"
	"github.com/go-petr/snapledger/pkg/errorspkg"
	"github.com/go-petr/snapledger/pkg/pinpkg"
	"github.com/rs/zerolog"
)

//go:generate mockgen -source service.go -destination service_mock.go -package pinservice

// Repo reads and writes PIN hashes.
type Repo interface {
	Get(ctx context.Context, id string) (domain.Account, error)
	SetPinHash(ctx context.Context, id, pinHash string) (domain.Account, error)
	ReplacePinHash(ctx context.Context, id, oldHash, newHash string) (domain.Account, error)
}

// AttemptRepo counts PIN checks since the last success.
type AttemptRepo interface {
	Reserve(ctx context.Context, accountID string) (int64, error)
	Extend(ctx context.Context, accountID string) error
	Reset(ctx context.Context, accountID string) error
}

// Service facilitates PIN service layer logic.
//
// It never touches balances or history.
type Service struct {
	repo        Repo
	attempts    AttemptRepo
	maxAttempts int64
}

// New returns PIN service. After maxAttempts consecutive failures the PIN is
// locked until the attempt counter expires.
func New(repo Repo, attempts AttemptRepo, maxAttempts int64) *Service {
	return &Service{
		repo:        repo,
		attempts:    attempts,
		maxAttempts: maxAttempts,
	}
}

// SetPin stores the first PIN of the account.
func (s *Service) SetPin(ctx context.Context, accountID, pin string) error {
	l := zerolog.Ctx(ctx)

	if !pinpkg.ValidFormat(pin) {
		return domain.ErrInvalidPinFormat
	}

	hash, err := pinpkg.Hash(pin)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.Wrap(errorspkg.ErrInternal, err)
	}

	if _, err := s.repo.SetPinHash(ctx, accountID, hash); err != nil {
		return err
	}

	l.Info().Str("account_id", accountID).Msg("pin set")

	return nil
}

// VerifyPin returns nil when pin matches the account's PIN and domain.ErrPinDenied
// otherwise. An unknown account and an account without PIN are denied the same way.
func (s *Service) VerifyPin(ctx context.Context, accountID, pin string) error {
	_, err := s.verify(ctx, accountID, pin)
	return err
}

// ChangePin replaces the PIN after checking the current one.
func (s *Service) ChangePin(ctx context.Context, accountID, currentPin, newPin string) error {
	l := zerolog.Ctx(ctx)

	if !pinpkg.ValidFormat(newPin) {
		return domain.ErrInvalidPinFormat
	}

	account, err := s.verify(ctx, accountID, currentPin)
	if err != nil {
		return err
	}

	hash, err := pinpkg.Hash(newPin)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.Wrap(errorspkg.ErrInternal, err)
	}

	if _, err := s.repo.ReplacePinHash(ctx, accountID, account.PinHash, hash); err != nil {
		return err
	}

	l.Info().Str("account_id", accountID).Msg("pin changed")

	return nil
}

// verify reserves an attempt before comparing the PIN, so at most maxAttempts
// checks are ever compared per window, however many run at once.
func (s *Service) verify(ctx context.Context, accountID, pin string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	attempt, err := s.attempts.Reserve(ctx, accountID)
	if err != nil {
		return domain.Account{}, err
	}

	if attempt > s.maxAttempts {
		l.Warn().Str("account_id", accountID).Msg("pin locked")
		return domain.Account{}, domain.ErrPinLocked
	}

	if !pinpkg.ValidFormat(pin) {
		return domain.Account{}, s.deny(ctx, accountID, attempt)
	}

	account, err := s.repo.Get(ctx, accountID)

	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		_ = pinpkg.CheckNone(pin)
		return domain.Account{}, s.deny(ctx, accountID, attempt)
	case err != nil:
		return domain.Account{}, err
	case !account.HasPin():
		_ = pinpkg.CheckNone(pin)
		return domain.Account{}, s.deny(ctx, accountID, attempt)
	}

	if err := pinpkg.Check(pin, account.PinHash); err != nil {
		if !errors.Is(err, pinpkg.ErrMismatchedPin) {
			l.Error().Err(err).Str("account_id", accountID).Msg("stored pin hash is unreadable")
		}

		return domain.Account{}, s.deny(ctx, accountID, attempt)
	}

	if err := s.attempts.Reset(ctx, accountID); err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

// deny restarts the lockout window and returns the error the caller sees.
func (s *Service) deny(ctx context.Context, accountID string, attempt int64) error {
	l := zerolog.Ctx(ctx)

	if err := s.attempts.Extend(ctx, accountID); err != nil {
		return err
	}

	l.Info().Str("account_id", accountID).Int64("failures", attempt).Msg("pin denied")

	return domain.ErrPinDenied
}
