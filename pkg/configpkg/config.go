// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper fron a config file or environement variables.
type Config struct {
	Environment          string        `mapstructure:"ENVIRONMENT"`
	DBDriver             string        `mapstructure:"DB_DRIVER"`
	DBSource             string        `mapstructure:"DB_SOURCE"`
	MigrationURL         string        `mapstructure:"MIGRATION_URL"`
	ServerAddress        string        `mapstructure:"SERVER_ADDRESS"`
	RedisAddress         string        `mapstructure:"REDIS_ADDRESS"`
	RedisPassword        string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB              int           `mapstructure:"REDIS_DB"`
	TokenType            string        `mapstructure:"TOKEN_TYPE"`
	TokenSymmetricKey    string        `mapstructure:"TOKEN_SYMMETRIC_KEY"`
	AccessTokenDuration  time.Duration `mapstructure:"ACCESS_TOKEN_DURATION"`
	RefreshTokenDuration time.Duration `mapstructure:"REFRESH_TOKEN_DURATION"`

	StartingGrant int64 `mapstructure:"STARTING_GRANT"`
	TransferLimit int64 `mapstructure:"TRANSFER_LIMIT"`
	DepositLimit  int64 `mapstructure:"DEPOSIT_LIMIT"`
	TxMaxAttempts int   `mapstructure:"TX_MAX_ATTEMPTS"`

	PinMaxAttempts     int64         `mapstructure:"PIN_MAX_ATTEMPTS"`
	PinLockoutDuration time.Duration `mapstructure:"PIN_LOCKOUT_DURATION"`

	VerificationTTL        time.Duration `mapstructure:"VERIFICATION_TTL"`
	VerificationCodeLength int           `mapstructure:"VERIFICATION_CODE_LENGTH"`

	SessionPruneSchedule string `mapstructure:"SESSION_PRUNE_SCHEDULE"`
}

// Load read configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	setDefaults(v)

	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_SOURCE", "")
	v.SetDefault("MIGRATION_URL", "file://configs/db/migration")
	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("REDIS_ADDRESS", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("TOKEN_TYPE", "paseto")
	v.SetDefault("TOKEN_SYMMETRIC_KEY", "")
	v.SetDefault("ACCESS_TOKEN_DURATION", 15*time.Minute)
	v.SetDefault("REFRESH_TOKEN_DURATION", 24*time.Hour)
	v.SetDefault("STARTING_GRANT", 1000)
	v.SetDefault("TRANSFER_LIMIT", 100_000)
	v.SetDefault("DEPOSIT_LIMIT", 50_000)
	v.SetDefault("TX_MAX_ATTEMPTS", 5)
	v.SetDefault("PIN_MAX_ATTEMPTS", 5)
	v.SetDefault("PIN_LOCKOUT_DURATION", 15*time.Minute)
	v.SetDefault("VERIFICATION_TTL", 5*time.Minute)
	v.SetDefault("VERIFICATION_CODE_LENGTH", 6)
	v.SetDefault("SESSION_PRUNE_SCHEDULE", "@hourly")
}
