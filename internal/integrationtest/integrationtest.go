// Package integrationtest provides db and redis helpers used in integration tests.
package integrationtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/snapledger/cmd/httpserver"
	"github.com/go-petr/snapledger/internal/middleware"
	"github.com/go-petr/snapledger/pkg/configpkg"
	"github.com/go-petr/snapledger/pkg/dbpkg"
	"github.com/go-petr/snapledger/pkg/redispkg"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	_ "github.com/lib/pq" // postgres driver
)

const (
	configPath    = "../../configs"
	migrationPath = "file://../../configs/db/migration"
)

// LoadConfig loads the configuration for a test package two levels below the module root.
func LoadConfig(t *testing.T) configpkg.Config {
	t.Helper()

	config, err := configpkg.Load(configPath)
	if err != nil {
		t.Fatalf(`configpkg.Load(%q) returned error: %v`, configPath, err)
	}

	return config
}

// SetupServer returns test server that cleans up database and redis after each integration test.
func SetupServer(t *testing.T) *httpserver.Server {
	t.Helper()

	config := LoadConfig(t)

	zerolog.SetGlobalLevel(zerolog.FatalLevel)

	logger := middleware.CreateLogger(config)

	db := SetupDB(t, config.DBDriver, config.DBSource)
	rdb := SetupRedis(t, config)

	gin.SetMode(gin.ReleaseMode)

	server, err := httpserver.New(db, rdb, logger, config)
	if err != nil {
		t.Fatalf(`httpserver.New(db, rdb, logger, config) returned error: %v`, err)
	}

	return server
}

// Flush flushes all db tables without droping.
func Flush(t *testing.T, db *sql.DB) {
	t.Helper()

	var tables string

	const query = `
	SELECT string_agg(table_name, ', ')
	FROM information_schema.tables
	WHERE table_schema='public' AND table_type='BASE TABLE' AND table_name <> 'schema_migrations';`

	row := db.QueryRow(query)

	err := row.Scan(&tables)
	if err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}

	if _, err := db.Exec(`TRUNCATE TABLE ` + tables + " CASCADE"); err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}
}

// SetupDB sets up connection with a migrated database for testing and then cleans it.
func SetupDB(t *testing.T, driver, source string) *sql.DB {
	t.Helper()

	if err := dbpkg.Migrate(migrationPath, source); err != nil {
		t.Fatalf("dbpkg.Migrate(%q) failed. err: %v", migrationPath, err)
	}

	db, err := dbpkg.Setup(driver, source)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	t.Cleanup(func() {
		Flush(t, db)

		if err := db.Close(); err != nil {
			t.Fatalf("db cleanup failed. err: %v", err)
		}
	})

	return db
}

// SetupTX sets up a database transaction to be used in tests.
//
// Once the tests are done it will rollback the transaction.
func SetupTX(t *testing.T, driver, source string) *sql.Tx {
	t.Helper()

	if err := dbpkg.Migrate(migrationPath, source); err != nil {
		t.Fatalf("dbpkg.Migrate(%q) failed. err: %v", migrationPath, err)
	}

	db, err := dbpkg.Setup(driver, source)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("db.Begin() failed: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Fatalf("tx.Rollback() failed: %v", err)
		}
		if err := db.Close(); err != nil {
			t.Fatalf("db.Close() failed: %v", err)
		}
	})

	return tx
}

// SetupRedis returns a redis client and flushes its database once the test is done.
func SetupRedis(t *testing.T, config configpkg.Config) *redis.Client {
	t.Helper()

	rdb, err := redispkg.Setup(context.Background(), config.RedisAddress, config.RedisPassword, config.RedisDB)
	if err != nil {
		t.Fatalf("redis initialization failed. err: %v", err)
	}

	t.Cleanup(func() {
		if err := rdb.FlushDB(context.Background()).Err(); err != nil {
			t.Fatalf("redis cleanup failed. err: %v", err)
		}
		if err := rdb.Close(); err != nil {
			t.Fatalf("rdb.Close() failed: %v", err)
		}
	})

	return rdb
}
