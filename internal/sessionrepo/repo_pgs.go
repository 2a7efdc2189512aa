// Package sessionrepo manages repository layer of sessions.
package sessionrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-petr/snapledger/internal/domain"
	"github.com/go-petr/snapledger/pkg/dbpkg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const sessionColumns = `id, account_id, refresh_token, user_agent, client_ip, is_blocked, expires_at, created_at`

// RepoPGS facilitates session repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns session RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

func scanSession(row *sql.Row) (domain.Session, error) {
	var s domain.Session

	err := row.Scan(
		&s.ID,
		&s.AccountID,
		&s.RefreshToken,
		&s.UserAgent,
		&s.ClientIP,
		&s.IsBlocked,
		&s.ExpiresAt,
		&s.CreatedAt,
	)

	return s, err
}

const createQuery = `
INSERT INTO sessions (
	id,
	account_id,
	refresh_token,
	user_agent,
	client_ip,
	is_blocked,
	expires_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7
	) RETURNING ` + sessionColumns

// Create creates the session and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateSessionParams) (domain.Session, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.ID,
		arg.AccountID,
		arg.RefreshToken,
		arg.UserAgent,
		arg.ClientIP,
		arg.IsBlocked,
		arg.ExpiresAt,
	)

	s, err := scanSession(row)
	if err != nil {
		l.Error().Err(err).Send()
		return s, dbpkg.Error(err)
	}

	return s, nil
}

const getQuery = `
SELECT ` + sessionColumns + `
FROM sessions
WHERE id = $1
`

// Get returns session with the given id.
func (r *RepoPGS) Get(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	l := zerolog.Ctx(ctx)

	s, err := scanSession(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s, domain.ErrSessionNotFound
		}

		l.Error().Err(err).Send()

		return s, dbpkg.Error(err)
	}

	return s, nil
}

const deleteExpiredQuery = `
DELETE FROM sessions
WHERE expires_at < $1
`

// DeleteExpired removes sessions that expired before the given time and returns their number.
func (r *RepoPGS) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteExpiredQuery, before)
	if err != nil {
		l.Error().Err(err).Send()
		return 0, dbpkg.Error(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return 0, dbpkg.Error(err)
	}

	return n, nil
}

const blockQuery = `
UPDATE sessions
SET is_blocked = true
WHERE id = $1
`

// Block marks the session as blocked so its refresh token can no longer be used.
func (r *RepoPGS) Block(ctx context.Context, id uuid.UUID) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, blockQuery, id)
	if err != nil {
		l.Error().Err(err).Send()
		return dbpkg.Error(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return dbpkg.Error(err)
	}

	if n == 0 {
		return domain.ErrSessionNotFound
	}

	return nil
}
