// Package main runs the SnapLedger API server.
package main

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/go-petr/snapledger/cmd/httpserver"
	"github.com/go-petr/snapledger/internal/middleware"
	"github.com/go-petr/snapledger/pkg/configpkg"
	"github.com/go-petr/snapledger/pkg/dbpkg"
	"github.com/go-petr/snapledger/pkg/redispkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)
	ctx := logger.WithContext(context.Background())

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	rdb, err := redispkg.Setup(ctx, config.RedisAddress, config.RedisPassword, config.RedisDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to redis")
	}

	server, err := httpserver.New(db, rdb, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	scheduler := cron.New()

	_, err = scheduler.AddFunc(config.SessionPruneSchedule, func() {
		if _, err := server.Sessions.PruneExpired(ctx); err != nil {
			logger.Error().Err(err).Msg("cannot prune expired sessions")
		}
	})
	if err != nil {
		logger.Fatal().Err(err).Str("schedule", config.SessionPruneSchedule).Msg("cannot schedule session pruning")
	}

	scheduler.Start()
	defer scheduler.Stop()

	logger.Info().Msg("SNAPLEDGER API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
