// Package verificationrepo stores pending verification handshakes in Redis.
package verificationrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-petr/snapledger/internal/domain"
	"github.com/go-petr/snapledger/pkg/errorspkg"
	"github.com/go-petr/snapledger/pkg/redispkg"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const keyPrefix = "verification:"

// ErrDuplicateVerification indicates that the verification id is already in use.
var ErrDuplicateVerification = errorspkg.New(errorspkg.KindConflict, "duplicate verification id")

// RepoRedis facilitates verification repository layer logic.
type RepoRedis struct {
	client redis.Cmdable
}

// NewRepoRedis returns verification RepoRedis.
func NewRepoRedis(client redis.Cmdable) *RepoRedis {
	return &RepoRedis{client: client}
}

func key(id uuid.UUID) string {
	return keyPrefix + id.String()
}

// Create stores v until v.ExpiresAt. It never overwrites another handshake.
func (r *RepoRedis) Create(ctx context.Context, v domain.Verification) error {
	l := zerolog.Ctx(ctx)

	ttl := time.Until(v.ExpiresAt)
	if ttl <= 0 {
		return domain.ErrVerificationNotFound
	}

	data, err := json.Marshal(v)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.Wrap(errorspkg.ErrInternal, err)
	}

	ok, err := r.client.SetNX(ctx, key(v.ID), data, ttl).Result()
	if err != nil {
		l.Error().Err(err).Send()
		return redispkg.Error(err)
	}

	if !ok {
		return ErrDuplicateVerification
	}

	return nil
}

// Consume removes the handshake and returns it. A handshake can be consumed once.
func (r *RepoRedis) Consume(ctx context.Context, id uuid.UUID) (domain.Verification, error) {
	l := zerolog.Ctx(ctx)

	var v domain.Verification

	data, err := r.client.GetDel(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return v, domain.ErrVerificationNotFound
		}

		l.Error().Err(err).Send()

		return v, redispkg.Error(err)
	}

	if err := json.Unmarshal(data, &v); err != nil {
		l.Error().Err(err).Str("verification_id", id.String()).Msg("corrupt verification record")
		return domain.Verification{}, errorspkg.Wrap(errorspkg.ErrInternal, err)
	}

	return v, nil
}
