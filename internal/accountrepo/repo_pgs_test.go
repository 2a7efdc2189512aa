//go:build integration

package accountrepo_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-petr/snapledger/internal/accountrepo"
	"github.com/go-petr/snapledger/internal/domain"
	"github.com/go-petr/snapledger/internal/integrationtest"
	"github.com/go-petr/snapledger/pkg/pinpkg"
	"github.com/go-petr/snapledger/pkg/randompkg"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) (*accountrepo.RepoPGS, *sql.Tx) {
	t.Helper()

	config := integrationtest.LoadConfig(t)
	tx := integrationtest.SetupTX(t, config.DBDriver, config.DBSource)

	return accountrepo.NewRepoPGS(tx), tx
}

func TestCreate(t *testing.T) {
	t.Parallel()

	repo, _ := setupRepo(t)
	ctx := context.Background()

	arg := domain.CreateAccountParams{
		ID:          randompkg.AccountID(),
		Username:    randompkg.Username(),
		DisplayName: randompkg.DisplayName(),
		Balance:     1000,
	}

	account, err := repo.Create(ctx, arg)
	require.NoError(t, err)
	require.Equal(t, arg.ID, account.ID)
	require.Equal(t, arg.Username, account.Username)
	require.Equal(t, arg.DisplayName, account.DisplayName)
	require.Equal(t, int64(1000), account.Balance)
	require.False(t, account.HasPin())
	require.NotZero(t, account.CreatedAt)

	again := arg
	again.Username = randompkg.Username()

	_, err = repo.Create(ctx, again)
	require.ErrorIs(t, err, domain.ErrAccountAlreadyExists)

	got, err := repo.Get(ctx, arg.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1000), got.Balance, "starting balance must be granted once")
	require.Equal(t, arg.Username, got.Username)
}

func TestCreateUsernameTaken(t *testing.T) {
	t.Parallel()

	repo, tx := setupRepo(t)
	account := integrationtest.SeedAccount(t, tx, 1000)

	_, err := repo.Create(context.Background(), domain.CreateAccountParams{
		ID:          randompkg.AccountID(),
		Username:    account.Username,
		DisplayName: randompkg.DisplayName(),
		Balance:     1000,
	})
	require.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestGet(t *testing.T) {
	t.Parallel()

	repo, tx := setupRepo(t)
	ctx := context.Background()
	account := integrationtest.SeedAccount(t, tx, 500)

	got, err := repo.Get(ctx, account.ID)
	require.NoError(t, err)
	require.Equal(t, account, got)

	got, err = repo.GetForUpdate(ctx, account.ID)
	require.NoError(t, err)
	require.Equal(t, account, got)

	got, err = repo.GetByUsername(ctx, account.Username)
	require.NoError(t, err)
	require.Equal(t, account, got)

	_, err = repo.Get(ctx, randompkg.AccountID())
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = repo.GetByUsername(ctx, randompkg.Username())
	require.ErrorIs(t, err, domain.ErrUsernameNotFound)
}

func TestAddBalance(t *testing.T) {
	t.Parallel()

	repo, tx := setupRepo(t)
	ctx := context.Background()
	account := integrationtest.SeedAccount(t, tx, 1000)

	got, err := repo.AddBalance(ctx, -300, account.ID)
	require.NoError(t, err)
	require.Equal(t, int64(700), got.Balance)

	got, err = repo.AddBalance(ctx, 50, account.ID)
	require.NoError(t, err)
	require.Equal(t, int64(750), got.Balance)

	_, err = repo.AddBalance(ctx, 10, randompkg.AccountID())
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	// The balance check aborts the transaction, so it goes last.
	_, err = repo.AddBalance(ctx, -751, account.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestSetUsername(t *testing.T) {
	t.Parallel()

	repo, tx := setupRepo(t)
	ctx := context.Background()
	account := integrationtest.SeedAccount(t, tx, 1000)
	other := integrationtest.SeedAccount(t, tx, 1000)

	username := randompkg.Username()

	got, err := repo.SetUsername(ctx, account.ID, username)
	require.NoError(t, err)
	require.Equal(t, username, got.Username)

	_, err = repo.SetUsername(ctx, randompkg.AccountID(), randompkg.Username())
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = repo.SetUsername(ctx, other.ID, username)
	require.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestPinHash(t *testing.T) {
	t.Parallel()

	repo, tx := setupRepo(t)
	ctx := context.Background()
	account := integrationtest.SeedAccount(t, tx, 1000)

	firstHash, err := pinpkg.Hash(randompkg.Pin())
	require.NoError(t, err)

	got, err := repo.SetPinHash(ctx, account.ID, firstHash)
	require.NoError(t, err)
	require.True(t, got.HasPin())
	require.Equal(t, firstHash, got.PinHash)

	_, err = repo.SetPinHash(ctx, account.ID, firstHash)
	require.ErrorIs(t, err, domain.ErrPinAlreadySet)

	_, err = repo.SetPinHash(ctx, randompkg.AccountID(), firstHash)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	secondHash, err := pinpkg.Hash(randompkg.Pin())
	require.NoError(t, err)

	got, err = repo.ReplacePinHash(ctx, account.ID, firstHash, secondHash)
	require.NoError(t, err)
	require.Equal(t, secondHash, got.PinHash)

	_, err = repo.ReplacePinHash(ctx, account.ID, firstHash, secondHash)
	require.ErrorIs(t, err, domain.ErrPinDenied)
}
