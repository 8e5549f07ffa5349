package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	t.Setenv("ENVIRONMENT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.DatabaseURL, "empty database url selects in-memory stores")
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 60, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 200.0, cfg.RateLimit.GlobalRPS)
	assert.False(t, cfg.RateLimit.Disabled)
	assert.Equal(t, "directory.audit", cfg.Kafka.AuditTopic)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directory.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":9000"
database_url: postgres://file
log_level: debug
token_ttl: 30m
redis:
  url: redis://file:6379
kafka:
  brokers: [a:9092, b:9092]
rate_limit:
  requests: 10
  window: 30s
`), 0o600))

	t.Setenv(ConfigPathEnv, path)
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("KAFKA_BROKERS", "c:9092, d:9092")
	t.Setenv("RATE_LIMIT_GLOBAL_RPS", "12.5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "postgres://env", cfg.DatabaseURL, "env overrides file")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "redis://file:6379", cfg.Redis.URL)
	assert.Equal(t, []string{"c:9092", "d:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 10, cfg.RateLimit.Requests)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, 12.5, cfg.RateLimit.GlobalRPS)
	assert.Equal(t, 400, cfg.RateLimit.GlobalBurst)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv(ConfigPathEnv, "")
		t.Setenv("TOKEN_TTL", "forever")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("production requires signing key", func(t *testing.T) {
		t.Setenv(ConfigPathEnv, "")
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("JWT_SIGNING_KEY", "")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("unknown log level", func(t *testing.T) {
		t.Setenv(ConfigPathEnv, "")
		t.Setenv("LOG_LEVEL", "loud")
		_, err := Load()
		require.Error(t, err)
	})
}
