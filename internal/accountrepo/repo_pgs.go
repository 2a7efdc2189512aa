// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/snapledger/internal/domain"
	"github.com/go-petr/snapledger/pkg/dbpkg"

	"github.com/rs/zerolog"
)

// Constraint names the repository translates into domain errors.
const (
	usernameKey     = "accounts_username_key"
	usernameCheck   = "accounts_username_check"
	balanceCheck    = "accounts_balance_check"
	accountColumns  = "id, username, display_name, balance, pin_hash, created_at"
	accountSelector = "SELECT " + accountColumns + " FROM accounts"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (domain.Account, error) {
	var (
		a       domain.Account
		pinHash sql.NullString
	)

	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.DisplayName,
		&a.Balance,
		&pinHash,
		&a.CreatedAt,
	)

	a.PinHash = pinHash.String

	return a, err
}

func translate(err error) error {
	switch dbpkg.Constraint(err) {
	case usernameKey:
		return domain.ErrUsernameTaken
	case usernameCheck:
		return domain.ErrInvalidUsername
	case balanceCheck:
		return domain.ErrInsufficientBalance
	}

	return dbpkg.Error(err)
}

const createQuery = `
INSERT INTO accounts (id, username, display_name, balance)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO NOTHING
RETURNING ` + accountColumns

// Create creates the account with its starting balance and then returns it.
//
// An existing account is left untouched, so the starting balance is granted once.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.ID, arg.Username, arg.DisplayName, arg.Balance)

	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Info().Str("account_id", arg.ID).Msg("account already exists")
			return a, domain.ErrAccountAlreadyExists
		}

		l.Error().Err(err).Msgf("Create(ctx context.Context, %+v)", arg)

		return a, translate(err)
	}

	return a, nil
}

const getQuery = accountSelector + `
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.Account, error) {
	return r.get(ctx, getQuery, id, domain.ErrAccountNotFound)
}

const getForUpdateQuery = accountSelector + `
WHERE id = $1
FOR UPDATE
`

// GetForUpdate returns the account with the given id and locks its row until
// the surrounding transaction ends.
func (r *RepoPGS) GetForUpdate(ctx context.Context, id string) (domain.Account, error) {
	return r.get(ctx, getForUpdateQuery, id, domain.ErrAccountNotFound)
}

const getByUsernameQuery = accountSelector + `
WHERE username = $1
`

// GetByUsername returns the account holding the given username.
func (r *RepoPGS) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	return r.get(ctx, getByUsernameQuery, username, domain.ErrUsernameNotFound)
}

func (r *RepoPGS) get(ctx context.Context, query, arg string, errNotFound error) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Info().Str("key", arg).Msg(errNotFound.Error())
			return a, errNotFound
		}

		l.Error().Err(err).Send()

		return a, translate(err)
	}

	return a, nil
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE id = $2
RETURNING ` + accountColumns

// AddBalance changes the account's balance and returns the changed account.
func (r *RepoPGS) AddBalance(ctx context.Context, amount int64, id string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, addBalanceQuery, amount, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, translate(err)
	}

	return a, nil
}

const setUsernameQuery = `
UPDATE accounts
SET username = $2
WHERE id = $1
RETURNING ` + accountColumns

// SetUsername assigns the username to the account.
func (r *RepoPGS) SetUsername(ctx context.Context, id, username string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, setUsernameQuery, id, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return a, domain.ErrAccountNotFound
		}

		l.Info().Err(err).Send()

		return a, translate(err)
	}

	return a, nil
}

const setPinHashQuery = `
UPDATE accounts
SET pin_hash = $2
WHERE id = $1 AND pin_hash IS NULL
RETURNING ` + accountColumns

// SetPinHash stores the PIN hash if the account has none yet.
//
// The check and the write are a single statement, so two concurrent callers
// cannot both observe an unset PIN.
func (r *RepoPGS) SetPinHash(ctx context.Context, id, pinHash string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, setPinHashQuery, id, pinHash))
	if err == nil {
		return a, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		l.Error().Err(err).Send()
		return a, translate(err)
	}

	if _, err := r.Get(ctx, id); err != nil {
		return domain.Account{}, err
	}

	return domain.Account{}, domain.ErrPinAlreadySet
}

const replacePinHashQuery = `
UPDATE accounts
SET pin_hash = $3
WHERE id = $1 AND pin_hash = $2
RETURNING ` + accountColumns

// ReplacePinHash swaps the PIN hash only if it still equals oldHash.
func (r *RepoPGS) ReplacePinHash(ctx context.Context, id, oldHash, newHash string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, replacePinHashQuery, id, oldHash, newHash))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Warn().Str("account_id", id).Msg("pin hash changed concurrently")
			return a, domain.ErrPinDenied
		}

		l.Error().Err(err).Send()

		return a, translate(err)
	}

	return a, nil
}
