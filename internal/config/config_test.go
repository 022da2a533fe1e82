package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "catalog-service", cfg.App.Name)
	assert.Equal(t, "3001", cfg.App.Port)
	assert.Equal(t, 30, cfg.App.RequestTimeoutSeconds)
	assert.Equal(t, "migrations", cfg.Postgres.MigrationsDir)
	assert.True(t, cfg.Postgres.RunMigrations)
	assert.Equal(t, 24*60, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, 30, cfg.Auth.PasswordResetTTLMinutes)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, 5.0, cfg.RateLimit.AuthRPS)
	assert.Equal(t, 10, cfg.RateLimit.AuthBurst)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("AUTH_JWT_SECRET", "configured-secret")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")
	t.Setenv("RATE_LIMIT_AUTH_RPS", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "configured-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 15, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, 2.5, cfg.RateLimit.AuthRPS)
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestSigningSecretFallback(t *testing.T) {
	t.Parallel()

	unset := AuthConfig{}
	assert.Equal(t, InsecureDefaultJWTSecret, unset.SigningSecret())
	assert.True(t, unset.UsingDefaultSecret())

	set := AuthConfig{JWTSecret: "real-secret"}
	assert.Equal(t, "real-secret", set.SigningSecret())
	assert.False(t, set.UsingDefaultSecret())
}

func TestAppAddr(t *testing.T) {
	t.Parallel()

	app := AppConfig{Host: "0.0.0.0", Port: "3001"}
	assert.Equal(t, "0.0.0.0:3001", app.Addr())
}

func TestRequestTimeout(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 30*time.Second, AppConfig{RequestTimeoutSeconds: 30}.RequestTimeout())
	assert.Zero(t, AppConfig{RequestTimeoutSeconds: 0}.RequestTimeout())
}

func TestCacheTTL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5*time.Minute, RedisConfig{}.CacheTTL())
	assert.Equal(t, 90*time.Second, RedisConfig{CacheTTLSec: 90}.CacheTTL())
}
