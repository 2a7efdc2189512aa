// Package redispkg opens the Redis client used for short-lived state.
package redispkg

import (
	"context"
	"time"

	"github.com/go-petr/snapledger/pkg/errorspkg"
	"github.com/go-redis/redis/v8"
)

const pingTimeout = 5 * time.Second

// ErrUnavailable indicates that Redis could not serve the request.
var ErrUnavailable = errorspkg.New(errorspkg.KindUnavailable, "ephemeral storage unavailable")

// Setup returns a connected client or an error if the server does not answer.
func Setup(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

// Error wraps an unexpected Redis failure.
func Error(err error) error {
	return errorspkg.Wrap(ErrUnavailable, err)
}
