//go:build integration

package ledgerrepo_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/go-petr/snapledger/internal/accountrepo"
	"github.com/go-petr/snapledger/internal/domain"
	"github.com/go-petr/snapledger/internal/entryrepo"
	"github.com/go-petr/snapledger/internal/integrationtest"
	"github.com/go-petr/snapledger/internal/ledgerrepo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestTransferScenario(t *testing.T) {
	config := integrationtest.LoadConfig(t)
	db := integrationtest.SetupDB(t, config.DBDriver, config.DBSource)
	repo := ledgerrepo.NewRepoPGS(db, config.TxMaxAttempts)
	ctx := context.Background()

	alice := integrationtest.SeedAccount(t, db, 1000)
	bob := integrationtest.SeedAccount(t, db, 500)

	result, err := repo.Transfer(ctx, domain.TransferTxParams{
		TransferID:        uuid.New(),
		SenderID:          alice.ID,
		RecipientID:       bob.ID,
		RecipientUsername: bob.Username,
		Amount:            300,
	})
	require.NoError(t, err)
	require.Equal(t, int64(700), result.Sender.Balance)
	require.Equal(t, int64(800), result.Recipient.Balance)

	require.Equal(t, domain.EntrySent, result.SentEntry.Kind)
	require.Equal(t, bob.Username, result.SentEntry.Counterparty)
	require.Equal(t, domain.EntryReceived, result.ReceivedEntry.Kind)
	require.Equal(t, alice.Username, result.ReceivedEntry.Counterparty)

	legs, err := entryrepo.NewRepoPGS(db).ListByTransfer(ctx, result.TransferID)
	require.NoError(t, err)
	require.Len(t, legs, 2)
	require.Equal(t, legs[0].Amount, legs[1].Amount)

	_, err = repo.Transfer(ctx, domain.TransferTxParams{
		SenderID:          alice.ID,
		RecipientID:       bob.ID,
		RecipientUsername: bob.Username,
		Amount:            701,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	got, err := accountrepo.NewRepoPGS(db).Get(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, int64(700), got.Balance)

	history, err := entryrepo.NewRepoPGS(db).List(ctx, domain.ListEntriesParams{AccountID: alice.ID})
	require.NoError(t, err)
	require.Len(t, history, 1, "a rejected transfer leaves no entry")
}

func TestConcurrentTransfersNeverOverdraw(t *testing.T) {
	config := integrationtest.LoadConfig(t)
	db := integrationtest.SetupDB(t, config.DBDriver, config.DBSource)
	repo := ledgerrepo.NewRepoPGS(db, 10)
	ctx := context.Background()

	sender := integrationtest.SeedAccount(t, db, 1000)
	recipients := []domain.Account{
		integrationtest.SeedAccount(t, db, 0),
		integrationtest.SeedAccount(t, db, 0),
	}

	var wg sync.WaitGroup

	errs := make(chan error, len(recipients))

	for _, recipient := range recipients {
		wg.Add(1)

		go func(recipient domain.Account) {
			defer wg.Done()

			_, err := repo.Transfer(ctx, domain.TransferTxParams{
				SenderID:          sender.ID,
				RecipientID:       recipient.ID,
				RecipientUsername: recipient.Username,
				Amount:            600,
			})
			errs <- err
		}(recipient)
	}

	wg.Wait()
	close(errs)

	var succeeded, rejected int

	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrInsufficientBalance), errors.Is(err, domain.ErrTransferAborted):
			rejected++
		default:
			t.Fatalf("unexpected transfer error: %v", err)
		}
	}

	require.Equal(t, 1, succeeded)
	require.Equal(t, 1, rejected)

	got, err := accountrepo.NewRepoPGS(db).Get(ctx, sender.ID)
	require.NoError(t, err)
	require.Equal(t, int64(400), got.Balance)
}

func TestConcurrentTransfersConserveValue(t *testing.T) {
	config := integrationtest.LoadConfig(t)
	db := integrationtest.SetupDB(t, config.DBDriver, config.DBSource)
	repo := ledgerrepo.NewRepoPGS(db, 20)
	accountRepo := accountrepo.NewRepoPGS(db)
	entryRepo := entryrepo.NewRepoPGS(db)
	ctx := context.Background()

	a := integrationtest.SeedAccount(t, db, 1000)
	b := integrationtest.SeedAccount(t, db, 1000)

	const n = 10

	var wg sync.WaitGroup

	// Opposite directions in parallel exercise the lock ordering.
	for i := 0; i < n; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()

			_, err := repo.Transfer(ctx, domain.TransferTxParams{
				SenderID: a.ID, RecipientID: b.ID, RecipientUsername: b.Username, Amount: 10,
			})
			require.NoError(t, err)
		}()

		go func() {
			defer wg.Done()

			_, err := repo.Transfer(ctx, domain.TransferTxParams{
				SenderID: b.ID, RecipientID: a.ID, RecipientUsername: a.Username, Amount: 10,
			})
			require.NoError(t, err)
		}()
	}

	wg.Wait()

	gotA, err := accountRepo.Get(ctx, a.ID)
	require.NoError(t, err)

	gotB, err := accountRepo.Get(ctx, b.ID)
	require.NoError(t, err)

	require.Equal(t, int64(2000), gotA.Balance+gotB.Balance)
	require.Equal(t, int64(1000), gotA.Balance)

	for _, account := range []domain.Account{a, b} {
		entries, err := entryRepo.List(ctx, domain.ListEntriesParams{AccountID: account.ID})
		require.NoError(t, err)
		require.Len(t, entries, 2*n)

		for _, e := range entries {
			require.NotNil(t, e.TransferID)

			legs, err := entryRepo.ListByTransfer(ctx, *e.TransferID)
			require.NoError(t, err)
			require.Len(t, legs, 2)
			require.Equal(t, domain.EntrySent, legs[0].Kind)
			require.Equal(t, domain.EntryReceived, legs[1].Kind)
		}
	}
}

func TestDepositIntegration(t *testing.T) {
	config := integrationtest.LoadConfig(t)
	db := integrationtest.SetupDB(t, config.DBDriver, config.DBSource)
	repo := ledgerrepo.NewRepoPGS(db, config.TxMaxAttempts)

	account := integrationtest.SeedAccount(t, db, 1000)

	result, err := repo.Deposit(context.Background(), domain.DepositTxParams{AccountID: account.ID, Amount: 250})
	require.NoError(t, err)
	require.Equal(t, int64(1250), result.Account.Balance)
	require.Equal(t, domain.EntryDeposited, result.Entry.Kind)
	require.Equal(t, domain.DepositCounterparty, result.Entry.Counterparty)
	require.Nil(t, result.Entry.TransferID)
}
