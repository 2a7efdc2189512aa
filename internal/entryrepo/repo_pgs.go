// Package entryrepo manages repository layer of entries.
package entryrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/snapledger/internal/domain"
	"github.com/go-petr/snapledger/pkg/dbpkg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const entryColumns = "id, account_id, kind, counterparty, amount, transfer_id, created_at"

// RepoPGS facilitates entry repository layer logic.
//
// Entries are append only: the repository has no update or delete.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns entry RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (domain.Entry, error) {
	var (
		e          domain.Entry
		kind       string
		transferID uuid.NullUUID
	)

	err := row.Scan(
		&e.ID,
		&e.AccountID,
		&kind,
		&e.Counterparty,
		&e.Amount,
		&transferID,
		&e.CreatedAt,
	)

	e.Kind = domain.EntryKind(kind)

	if transferID.Valid {
		id := transferID.UUID
		e.TransferID = &id
	}

	return e, err
}

const createQuery = `
INSERT INTO
    entries (id, account_id, kind, counterparty, amount, transfer_id, created_at)
VALUES
    ($1, $2, $3, $4, $5, $6, clock_timestamp())
RETURNING ` + entryColumns

// Create appends the entry and then returns it.
//
// The timestamp is taken when the row is written, so inside a transaction that
// holds the account row lock it is not earlier than any committed entry of the account.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateEntryParams) (domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	if arg.ID == uuid.Nil {
		arg.ID = uuid.New()
	}

	var transferID uuid.NullUUID
	if arg.TransferID != nil {
		transferID = uuid.NullUUID{UUID: *arg.TransferID, Valid: true}
	}

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.ID,
		arg.AccountID,
		string(arg.Kind),
		arg.Counterparty,
		arg.Amount,
		transferID,
	)

	e, err := scanEntry(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx context.Context, %+v)", arg)

		switch dbpkg.Constraint(err) {
		case "entries_account_id_fkey":
			return e, domain.ErrAccountNotFound
		case "entries_amount_check":
			return e, domain.ErrInvalidAmount
		}

		return e, dbpkg.Error(err)
	}

	return e, nil
}

const getQuery = `
SELECT ` + entryColumns + ` FROM entries
WHERE id = $1
`

// Get returns the entry with the given id.
func (r *RepoPGS) Get(ctx context.Context, id uuid.UUID) (domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	e, err := scanEntry(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return e, domain.ErrEntryNotFound
		}

		l.Error().Err(err).Send()

		return e, dbpkg.Error(err)
	}

	return e, nil
}

const listQuery = `
SELECT ` + entryColumns + ` FROM entries
WHERE account_id = $1
ORDER BY created_at DESC, seq DESC
LIMIT NULLIF($2::int, 0) OFFSET $3
`

// List returns the entries of the given account, newest first.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListEntriesParams) ([]domain.Entry, error) {
	return r.list(ctx, listQuery, arg.AccountID, arg.Limit, arg.Offset)
}

const listByTransferQuery = `
SELECT ` + entryColumns + ` FROM entries
WHERE transfer_id = $1
ORDER BY seq
`

// ListByTransfer returns both legs of the given transfer.
func (r *RepoPGS) ListByTransfer(ctx context.Context, transferID uuid.UUID) ([]domain.Entry, error) {
	return r.list(ctx, listByTransferQuery, transferID)
}

func (r *RepoPGS) list(ctx context.Context, query string, args ...any) ([]domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, dbpkg.Error(err)
	}
	defer rows.Close()

	items := []domain.Entry{}

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, dbpkg.Error(err)
		}

		items = append(items, e)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, dbpkg.Error(err)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, dbpkg.Error(err)
	}

	return items, nil
}
