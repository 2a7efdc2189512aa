// Package main applies database migrations.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/go-petr/snapledger/internal/middleware"
	"github.com/go-petr/snapledger/pkg/configpkg"
	"github.com/go-petr/snapledger/pkg/dbpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	if err := dbpkg.Migrate(config.MigrationURL, config.DBSource); err != nil {
		logger.Fatal().Err(err).Str("migration_url", config.MigrationURL).Msg("cannot apply migrations")
	}

	logger.Info().Msg("migrations applied")
}
