// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/go-petr/snapledger/internal/domain"
	"github.com/go-petr/snapledger/pkg/validpkg"
	"github.com/rs/zerolog"
)

// Limits of the account profile fields.
const (
	MaxAccountIDLength   = 128
	MaxDisplayNameLength = 64
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id string) (domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo          Repo
	startingGrant int64
}

// New returns account service struct to manage account bussines logic.
//
// Every created account starts with startingGrant on its balance.
func New(ar Repo, startingGrant int64) *Service {
	return &Service{
		repo:          ar,
		startingGrant: startingGrant,
	}
}

// ValidAccountID reports whether id can identify an account.
func ValidAccountID(id string) bool {
	return id != "" && len(id) <= MaxAccountIDLength && strings.TrimSpace(id) == id
}

// Create creates the account of the authenticated caller with the starting grant.
//
// Creating an existing account fails with domain.ErrAccountAlreadyExists and
// does not grant the balance again.
func (s *Service) Create(ctx context.Context, accountID, username, displayName string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	displayName = strings.TrimSpace(displayName)

	switch {
	case !ValidAccountID(accountID):
		return domain.Account{}, domain.ErrInvalidAccountID
	case !validpkg.ValidUsername(username):
		return domain.Account{}, domain.ErrInvalidUsername
	case displayName == "" || utf8.RuneCountInString(displayName) > MaxDisplayNameLength:
		return domain.Account{}, domain.ErrInvalidDisplayName
	}

	account, err := s.repo.Create(ctx, domain.CreateAccountParams{
		ID:          accountID,
		Username:    username,
		DisplayName: displayName,
		Balance:     s.startingGrant,
	})
	if err != nil {
		return domain.Account{}, err
	}

	l.Info().Str("account_id", account.ID).Int64("grant", account.Balance).Msg("account created")

	return account, nil
}

// Get returns account for the given account ID.
func (s *Service) Get(ctx context.Context, accountID string) (domain.Account, error) {
	if !ValidAccountID(accountID) {
		return domain.Account{}, domain.ErrInvalidAccountID
	}

	account, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return domain.Account{}, err
	}

	return account, nil
}
