//go:build integration

package entryrepo_test

import (
	"context"
	"testing"

	"github.com/go-petr/snapledger/internal/domain"
	"github.com/go-petr/snapledger/internal/entryrepo"
	"github.com/go-petr/snapledger/internal/integrationtest"
	"github.com/go-petr/snapledger/pkg/randompkg"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGet(t *testing.T) {
	t.Parallel()

	config := integrationtest.LoadConfig(t)
	tx := integrationtest.SetupTX(t, config.DBDriver, config.DBSource)
	repo := entryrepo.NewRepoPGS(tx)
	ctx := context.Background()

	sender := integrationtest.SeedAccount(t, tx, 1000)
	recipient := integrationtest.SeedAccount(t, tx, 1000)
	transferID := uuid.New()

	sent, err := repo.Create(ctx, domain.CreateEntryParams{
		AccountID:    sender.ID,
		Kind:         domain.EntrySent,
		Counterparty: recipient.Username,
		Amount:       300,
		TransferID:   &transferID,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, sent.ID)
	require.Equal(t, domain.EntrySent, sent.Kind)
	require.Equal(t, int64(300), sent.Amount)
	require.NotNil(t, sent.TransferID)
	require.Equal(t, transferID, *sent.TransferID)
	require.NotZero(t, sent.CreatedAt)

	received, err := repo.Create(ctx, domain.CreateEntryParams{
		AccountID:    recipient.ID,
		Kind:         domain.EntryReceived,
		Counterparty: sender.Username,
		Amount:       300,
		TransferID:   &transferID,
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, sent.ID)
	require.NoError(t, err)
	require.Equal(t, sent, got)

	legs, err := repo.ListByTransfer(ctx, transferID)
	require.NoError(t, err)
	require.Equal(t, []domain.Entry{sent, received}, legs)

	deposit := integrationtest.SeedDeposit(t, tx, sender.ID, 50)
	require.Nil(t, deposit.TransferID)
	require.Equal(t, domain.DepositCounterparty, deposit.Counterparty)

	_, err = repo.Get(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestCreateInvalid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		arg     func(accountID string) domain.CreateEntryParams
		wantErr error
	}{
		{
			name: "ErrAccountNotFound",
			arg: func(string) domain.CreateEntryParams {
				return domain.CreateEntryParams{
					AccountID:    randompkg.AccountID(),
					Kind:         domain.EntryDeposited,
					Counterparty: domain.DepositCounterparty,
					Amount:       10,
				}
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "ErrInvalidAmount",
			arg: func(accountID string) domain.CreateEntryParams {
				return domain.CreateEntryParams{
					AccountID:    accountID,
					Kind:         domain.EntryDeposited,
					Counterparty: domain.DepositCounterparty,
					Amount:       0,
				}
			},
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			config := integrationtest.LoadConfig(t)
			tx := integrationtest.SetupTX(t, config.DBDriver, config.DBSource)
			account := integrationtest.SeedAccount(t, tx, 1000)

			_, err := entryrepo.NewRepoPGS(tx).Create(context.Background(), tc.arg(account.ID))
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	config := integrationtest.LoadConfig(t)
	tx := integrationtest.SetupTX(t, config.DBDriver, config.DBSource)
	repo := entryrepo.NewRepoPGS(tx)
	ctx := context.Background()

	account := integrationtest.SeedAccount(t, tx, 1000)
	other := integrationtest.SeedAccount(t, tx, 1000)
	integrationtest.SeedDeposit(t, tx, other.ID, 7)

	seeded := make([]domain.Entry, 5)
	for i := range seeded {
		seeded[i] = integrationtest.SeedDeposit(t, tx, account.ID, int64(i+1))
	}

	newestFirst := make([]domain.Entry, len(seeded))
	for i := range seeded {
		newestFirst[i] = seeded[len(seeded)-1-i]
	}

	testCases := []struct {
		name string
		arg  domain.ListEntriesParams
		want []domain.Entry
	}{
		{
			name: "All",
			arg:  domain.ListEntriesParams{AccountID: account.ID},
			want: newestFirst,
		},
		{
			name: "Page",
			arg:  domain.ListEntriesParams{AccountID: account.ID, Limit: 2, Offset: 1},
			want: newestFirst[1:3],
		},
		{
			name: "OffsetPastEnd",
			arg:  domain.ListEntriesParams{AccountID: account.ID, Limit: 2, Offset: 10},
			want: []domain.Entry{},
		},
		{
			name: "NoEntries",
			arg:  domain.ListEntriesParams{AccountID: randompkg.AccountID()},
			want: []domain.Entry{},
		},
	}

	for _, tc := range testCases {
		got, err := repo.List(ctx, tc.arg)
		require.NoError(t, err, tc.name)
		require.Equal(t, tc.want, got, tc.name)
	}
}
