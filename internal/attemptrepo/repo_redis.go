// Package attemptrepo counts failed PIN checks per account.
package attemptrepo

import (
	"context"
	"time"

	"github.com/go-petr/snapledger/pkg/redispkg"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

const keyPrefix = "pin_attempts:"

// RepoRedis keeps failure counters in Redis.
//
// A counter expires window after the last failure, so the lockout lifts on its own.
// Counting happens before the PIN is compared.
type RepoRedis struct {
	client redis.Cmdable
	window time.Duration
}

// NewRepoRedis returns attempt RepoRedis.
func NewRepoRedis(client redis.Cmdable, window time.Duration) *RepoRedis {
	return &RepoRedis{
		client: client,
		window: window,
	}
}

func key(accountID string) string {
	return keyPrefix + accountID
}

// Reserve counts one more PIN check and returns the count including it.
//
// The first reservation starts the window. Callers reserve before comparing the
// PIN, so concurrent checks never see the same count.
func (r *RepoRedis) Reserve(ctx context.Context, accountID string) (int64, error) {
	l := zerolog.Ctx(ctx)

	k := key(accountID)

	n, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		l.Error().Err(err).Send()
		return 0, redispkg.Error(err)
	}

	if n == 1 {
		if err := r.client.Expire(ctx, k, r.window).Err(); err != nil {
			l.Error().Err(err).Send()

			// A counter without TTL would lock the PIN for good.
			if delErr := r.client.Del(ctx, k).Err(); delErr != nil {
				l.Error().Err(delErr).Send()
			}

			return 0, redispkg.Error(err)
		}
	}

	return n, nil
}

// Extend restarts the window after a failed check, so the lockout lasts window
// from the last failure.
func (r *RepoRedis) Extend(ctx context.Context, accountID string) error {
	l := zerolog.Ctx(ctx)

	if err := r.client.Expire(ctx, key(accountID), r.window).Err(); err != nil {
		l.Error().Err(err).Send()
		return redispkg.Error(err)
	}

	return nil
}

// Reset clears the counter.
func (r *RepoRedis) Reset(ctx context.Context, accountID string) error {
	l := zerolog.Ctx(ctx)

	if err := r.client.Del(ctx, key(accountID)).Err(); err != nil {
		l.Error().Err(err).Send()
		return redispkg.Error(err)
	}

	return nil
}
