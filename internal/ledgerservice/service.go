// Package ledgerservice manages business logic layer of the ledger.
package ledgerservice

import (
	"context"
	"errors"

	"github.com/go-petr/snapledger/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice

// Repo runs the multi-account units of work.
type Repo interface {
	Transfer(ctx context.Context, arg domain.TransferTxParams) (domain.TransferResult, error)
	Deposit(ctx context.Context, arg domain.DepositTxParams) (domain.DepositResult, error)
}

// AccountRepo reads account balances.
type AccountRepo interface {
	Get(ctx context.Context, id string) (domain.Account, error)
}

// EntryRepo reads account history.
type EntryRepo interface {
	List(ctx context.Context, arg domain.ListEntriesParams) ([]domain.Entry, error)
}

// Resolver maps recipient usernames to account ids.
type Resolver interface {
	Resolve(ctx context.Context, username string) (string, error)
}

// Limits are the per operation amount ceilings.
type Limits struct {
	Transfer int64
	Deposit  int64
}

// Service facilitates ledger service layer logic.
type Service struct {
	repo        Repo
	accountRepo AccountRepo
	entryRepo   EntryRepo
	resolver    Resolver
	limits      Limits
}

// New returns ledger service.
func New(repo Repo, accountRepo AccountRepo, entryRepo EntryRepo, resolver Resolver, limits Limits) *Service {
	return &Service{
		repo:        repo,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		resolver:    resolver,
		limits:      limits,
	}
}

func validAmount(amount, limit int64) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}

	if amount > limit {
		return domain.ErrAmountExceedsLimit
	}

	return nil
}

// Transfer moves arg.Amount from the sender to the account holding arg.RecipientUsername.
func (s *Service) Transfer(ctx context.Context, arg domain.TransferParams) (domain.TransferResult, error) {
	l := zerolog.Ctx(ctx)

	if err := validAmount(arg.Amount, s.limits.Transfer); err != nil {
		l.Info().Err(err).Int64("amount", arg.Amount).Send()
		return domain.TransferResult{}, err
	}

	if arg.SenderID == "" {
		return domain.TransferResult{}, domain.ErrInvalidAccountID
	}

	recipientID, err := s.resolver.Resolve(ctx, arg.RecipientUsername)
	if err != nil {
		if errors.Is(err, domain.ErrUsernameNotFound) {
			l.Info().Str("recipient", arg.RecipientUsername).Msg("recipient not found")
			return domain.TransferResult{}, domain.ErrRecipientNotFound
		}

		return domain.TransferResult{}, err
	}

	if recipientID == arg.SenderID {
		return domain.TransferResult{}, domain.ErrSelfTransfer
	}

	txArg := domain.TransferTxParams{
		TransferID:        uuid.New(),
		SenderID:          arg.SenderID,
		RecipientID:       recipientID,
		RecipientUsername: arg.RecipientUsername,
		Amount:            arg.Amount,
	}

	result, err := s.repo.Transfer(ctx, txArg)
	if err != nil {
		return domain.TransferResult{}, err
	}

	l.Info().
		Str("transfer_id", result.TransferID.String()).
		Str("sender_id", arg.SenderID).
		Str("recipient_id", recipientID).
		Int64("amount", arg.Amount).
		Msg("transfer committed")

	return result, nil
}

// Deposit adds amount to the account.
func (s *Service) Deposit(ctx context.Context, accountID string, amount int64) (domain.DepositResult, error) {
	l := zerolog.Ctx(ctx)

	if err := validAmount(amount, s.limits.Deposit); err != nil {
		l.Info().Err(err).Int64("amount", amount).Send()
		return domain.DepositResult{}, err
	}

	if accountID == "" {
		return domain.DepositResult{}, domain.ErrInvalidAccountID
	}

	result, err := s.repo.Deposit(ctx, domain.DepositTxParams{AccountID: accountID, Amount: amount})
	if err != nil {
		return domain.DepositResult{}, err
	}

	l.Info().Str("account_id", accountID).Int64("amount", amount).Msg("deposit committed")

	return result, nil
}

// GetBalance returns the committed balance of the account.
func (s *Service) GetBalance(ctx context.Context, accountID string) (int64, error) {
	account, err := s.accountRepo.Get(ctx, accountID)
	if err != nil {
		return 0, err
	}

	return account.Balance, nil
}

// ListHistory returns the account's entries, newest first. A zero limit returns all of them.
func (s *Service) ListHistory(ctx context.Context, arg domain.ListEntriesParams) ([]domain.Entry, error) {
	if arg.Limit < 0 || arg.Offset < 0 {
		return nil, domain.ErrInvalidPage
	}

	if _, err := s.accountRepo.Get(ctx, arg.AccountID); err != nil {
		return nil, err
	}

	return s.entryRepo.List(ctx, arg)
}
