package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("APP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "jobly", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, defaultJWTSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, 5, cfg.Auth.LoginMaxFailures)
	assert.Equal(t, 15*time.Minute, cfg.Auth.LockoutWindow())
	assert.True(t, cfg.Postgres.RunMigrations)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("AUTH_BCRYPT_COST", "4")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.False(t, cfg.Postgres.RunMigrations)
	assert.Equal(t, 0.5, cfg.RateLimit.RequestsPerSecond)
	assert.Zero(t, cfg.App.RequestTimeout())
}

func TestLoad_InvalidNumbers(t *testing.T) {
	t.Setenv("REDIS_DB", "zero")
	_, err := Load()
	assert.ErrorContains(t, err, "REDIS_DB")

	t.Setenv("REDIS_DB", "0")
	t.Setenv("RATE_LIMIT_RPS", "fast")
	_, err = Load()
	assert.ErrorContains(t, err, "RATE_LIMIT_RPS")
}

func TestLoad_EveryTypedVariableIsChecked(t *testing.T) {
	keys := []string{
		"HTTP_REQUEST_TIMEOUT_SECONDS",
		"POSTGRES_MAX_CONNS",
		"POSTGRES_MIN_CONNS",
		"POSTGRES_RUN_MIGRATIONS",
		"POSTGRES_CONN_MAX_IDLE_SECONDS",
		"POSTGRES_CONN_MAX_LIFE_SECONDS",
		"AUTH_ACCESS_TOKEN_TTL_MINUTES",
		"AUTH_BCRYPT_COST",
		"AUTH_LOGIN_MAX_FAILURES",
		"AUTH_LOGIN_LOCKOUT_MINUTES",
		"RATE_LIMIT_BURST",
		"APP_PORT",
	}
	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "abc")
			cfg, err := Load()
			assert.Nil(t, cfg)
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestLoad_ReportsAllBadVariables(t *testing.T) {
	t.Setenv("AUTH_BCRYPT_COST", "abc")
	t.Setenv("POSTGRES_MAX_CONNS", "9999999999")

	_, err := Load()
	assert.ErrorContains(t, err, "AUTH_BCRYPT_COST")
	assert.ErrorContains(t, err, "POSTGRES_MAX_CONNS")
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "AUTH_JWT_SECRET")
}

func TestLoad_BcryptCostRange(t *testing.T) {
	t.Setenv("AUTH_BCRYPT_COST", "40")
	_, err := Load()
	assert.ErrorContains(t, err, "AUTH_BCRYPT_COST")
}
