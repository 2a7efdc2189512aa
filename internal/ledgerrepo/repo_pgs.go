// Package ledgerrepo runs the ledger's multi-account transactions.
package ledgerrepo

import (
	"context"
	"database/sql"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/go-petr/snapledger/internal/accountrepo"
	"github.com/go-petr/snapledger/internal/domain"
	"github.com/go-petr/snapledger/internal/entryrepo"
	"github.com/go-petr/snapledger/pkg/dbpkg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	baseBackoff = 5 * time.Millisecond
	maxBackoff  = 500 * time.Millisecond
)

// RepoPGS facilitates ledger repository layer logic.
type RepoPGS struct {
	conn        dbpkg.TxStarter
	maxAttempts int
	backoff     func(attempt int) time.Duration
}

// NewRepoPGS returns ledger RepoPGS.
//
// A transaction that fails on a serialization conflict or a deadlock is replayed
// up to maxAttempts times in total.
func NewRepoPGS(conn dbpkg.TxStarter, maxAttempts int) *RepoPGS {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &RepoPGS{
		conn:        conn,
		maxAttempts: maxAttempts,
		backoff:     jitteredBackoff,
	}
}

func jitteredBackoff(attempt int) time.Duration {
	d := maxBackoff
	if attempt < 7 {
		d = min(baseBackoff<<attempt, maxBackoff)
	}

	return d/2 + rand.N(d/2+1)
}

// execTx runs fn inside a serializable transaction and replays it on retryable conflicts.
// A canceled ctx ends it with domain.ErrTransferAborted unless the commit already happened.
func (r *RepoPGS) execTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	l := zerolog.Ctx(ctx)

	var err error

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		if attempt > 0 {
			t := time.NewTimer(r.backoff(attempt))
			select {
			case <-ctx.Done():
				t.Stop()
				return domain.ErrTransferAborted
			case <-t.C:
			}
		}

		err = r.runTx(ctx, fn)
		if err != nil && ctx.Err() != nil {
			// Nothing committed; report cancellation the same way at every stage.
			l.Info().Err(err).Msg("ledger transaction canceled")
			return domain.ErrTransferAborted
		}

		if err == nil || !dbpkg.IsRetryable(err) {
			return err
		}

		l.Warn().Err(err).Int("attempt", attempt+1).Msg("ledger transaction conflict")
	}

	l.Error().Err(err).Int("attempts", r.maxAttempts).Msg("ledger transaction aborted")

	return domain.ErrTransferAborted
}

func (r *RepoPGS) runTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		l.Error().Err(err).Send()
		return dbpkg.Error(err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			l.Error().Err(rbErr).Send()
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return dbpkg.Error(err)
	}

	return nil
}

// Transfer moves arg.Amount from the sender to the recipient.
//
// Both balances and both entries are written in one serializable transaction.
// The sufficiency check reads the sender's balance under its row lock.
func (r *RepoPGS) Transfer(ctx context.Context, arg domain.TransferTxParams) (domain.TransferResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferResult

	if arg.TransferID == uuid.Nil {
		arg.TransferID = uuid.New()
	}

	err := r.execTx(ctx, func(tx *sql.Tx) error {
		result = domain.TransferResult{TransferID: arg.TransferID}

		accountRepo := accountrepo.NewRepoPGS(tx)
		entryRepo := entryrepo.NewRepoPGS(tx)

		// To avoid deadlocks lock rows in consistent id order
		sender, recipient, err := lockPair(ctx, accountRepo, arg.SenderID, arg.RecipientID)
		if err != nil {
			return err
		}

		// The recipient was resolved by username before the transaction began.
		if recipient.Username != arg.RecipientUsername {
			l.Info().Str("account_id", recipient.ID).Str("username", arg.RecipientUsername).
				Msg("recipient username changed")
			return domain.ErrRecipientNotFound
		}

		if sender.Balance < arg.Amount {
			l.Info().Str("account_id", sender.ID).Int64("amount", arg.Amount).Msg("insufficient balance")
			return domain.ErrInsufficientBalance
		}

		if arg.SenderID < arg.RecipientID {
			result.Sender, result.Recipient, err = addBalances(ctx, accountRepo,
				arg.SenderID, -arg.Amount, arg.RecipientID, arg.Amount)
		} else {
			result.Recipient, result.Sender, err = addBalances(ctx, accountRepo,
				arg.RecipientID, arg.Amount, arg.SenderID, -arg.Amount)
		}

		if err != nil {
			return err
		}

		result.SentEntry, err = entryRepo.Create(ctx, domain.CreateEntryParams{
			AccountID:    sender.ID,
			Kind:         domain.EntrySent,
			Counterparty: recipient.Username,
			Amount:       arg.Amount,
			TransferID:   &result.TransferID,
		})
		if err != nil {
			return err
		}

		result.ReceivedEntry, err = entryRepo.Create(ctx, domain.CreateEntryParams{
			AccountID:    recipient.ID,
			Kind:         domain.EntryReceived,
			Counterparty: sender.Username,
			Amount:       arg.Amount,
			TransferID:   &result.TransferID,
		})

		return err
	})

	if err != nil {
		return domain.TransferResult{}, err
	}

	return result, nil
}

// Deposit credits the account and records a Deposited entry.
func (r *RepoPGS) Deposit(ctx context.Context, arg domain.DepositTxParams) (domain.DepositResult, error) {
	var result domain.DepositResult

	err := r.execTx(ctx, func(tx *sql.Tx) error {
		accountRepo := accountrepo.NewRepoPGS(tx)
		entryRepo := entryrepo.NewRepoPGS(tx)

		if _, err := accountRepo.GetForUpdate(ctx, arg.AccountID); err != nil {
			return err
		}

		var err error

		result.Account, err = accountRepo.AddBalance(ctx, arg.Amount, arg.AccountID)
		if err != nil {
			return err
		}

		result.Entry, err = entryRepo.Create(ctx, domain.CreateEntryParams{
			AccountID:    arg.AccountID,
			Kind:         domain.EntryDeposited,
			Counterparty: domain.DepositCounterparty,
			Amount:       arg.Amount,
		})

		return err
	})

	if err != nil {
		return domain.DepositResult{}, err
	}

	return result, nil
}

func lockPair(ctx context.Context, r *accountrepo.RepoPGS, senderID, recipientID string) (domain.Account, domain.Account, error) {
	firstID, secondID := senderID, recipientID
	if recipientID < senderID {
		firstID, secondID = recipientID, senderID
	}

	first, err := r.GetForUpdate(ctx, firstID)
	if err != nil {
		return domain.Account{}, domain.Account{}, notFound(err, firstID == recipientID)
	}

	second, err := r.GetForUpdate(ctx, secondID)
	if err != nil {
		return domain.Account{}, domain.Account{}, notFound(err, secondID == recipientID)
	}

	if firstID == senderID {
		return first, second, nil
	}

	return second, first, nil
}

func notFound(err error, isRecipient bool) error {
	if isRecipient && errors.Is(err, domain.ErrAccountNotFound) {
		return domain.ErrRecipientNotFound
	}

	return err
}

func addBalances(ctx context.Context, r *accountrepo.RepoPGS,
	account1ID string, amount1 int64, account2ID string, amount2 int64,
) (domain.Account, domain.Account, error) {
	account1, err := r.AddBalance(ctx, amount1, account1ID)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	account2, err := r.AddBalance(ctx, amount2, account2ID)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	return account1, account2, nil
}
