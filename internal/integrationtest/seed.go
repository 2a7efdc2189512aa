package integrationtest

import (
	"context"
	"testing"

	"github.com/go-petr/snapledger/internal/accountrepo"
	"github.com/go-petr/snapledger/internal/domain"
	"github.com/go-petr/snapledger/internal/entryrepo"
	"github.com/go-petr/snapledger/internal/sessionrepo"
	"github.com/go-petr/snapledger/pkg/dbpkg"
	"github.com/go-petr/snapledger/pkg/pinpkg"
	"github.com/go-petr/snapledger/pkg/randompkg"
)

// SeedAccount creates a random Account with the given balance.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface, balance int64) domain.Account {
	t.Helper()

	arg := domain.CreateAccountParams{
		ID:          randompkg.AccountID(),
		Username:    randompkg.Username(),
		DisplayName: randompkg.DisplayName(),
		Balance:     balance,
	}

	account, err := accountrepo.NewRepoPGS(db).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return account
}

// SeedAccountWithPin creates a random Account with the given balance and PIN.
func SeedAccountWithPin(t *testing.T, db dbpkg.SQLInterface, balance int64, pin string) domain.Account {
	t.Helper()

	account := SeedAccount(t, db, balance)

	pinHash, err := pinpkg.Hash(pin)
	if err != nil {
		t.Fatalf("pinpkg.Hash(%q) returned error: %v", pin, err)
	}

	account, err = accountrepo.NewRepoPGS(db).SetPinHash(context.Background(), account.ID, pinHash)
	if err != nil {
		t.Fatalf("accountRepo.SetPinHash(context.Background(), %v) returned error: %v", account.ID, err)
	}

	return account
}

// SeedDeposit appends a deposit entry for accountID without touching its balance.
func SeedDeposit(t *testing.T, db dbpkg.SQLInterface, accountID string, amount int64) domain.Entry {
	t.Helper()

	arg := domain.CreateEntryParams{
		AccountID:    accountID,
		Kind:         domain.EntryDeposited,
		Counterparty: domain.DepositCounterparty,
		Amount:       amount,
	}

	entry, err := entryrepo.NewRepoPGS(db).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("entryRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return entry
}

// SeedSession creates a Session.
func SeedSession(t *testing.T, db dbpkg.SQLInterface, arg domain.CreateSessionParams) domain.Session {
	t.Helper()

	session, err := sessionrepo.NewRepoPGS(db).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("sessionRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return session
}
