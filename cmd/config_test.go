package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingDotEnv(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(missingDotEnv(t))
	require.NoError(t, err)

	assert.Equal(t, "@every 5s", cfg.OutboxRelaySchedule)
	assert.Equal(t, 100, cfg.OutboxRelayBatchSize)
	assert.Equal(t, 10*time.Millisecond, cfg.RetryBase)
	assert.Equal(t, uint64(5), cfg.RetryMaxRetries)
	assert.Equal(t, time.Minute, cfg.ProviderCacheTTL)
}

func TestLoadConfig_ReadsEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("KAFKA_HOST", "kafka-1:9092,kafka-2:9092")
	t.Setenv("ORDER_ID_TIMEZONE", "Asia/Shanghai")
	t.Setenv("RETRY_MAX_DELAY", "2s")

	cfg, err := LoadConfig(missingDotEnv(t))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.HTTPAddr())
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaHost)
	assert.Equal(t, 2*time.Second, cfg.RetryPolicy().MaxDelay)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Shanghai", loc.String())
}

func TestLoadConfig_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dotenv := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("REDIS_ADDR=redis:6379\nLOG_LEVEL=debug\n"), 0o600))
	t.Setenv("LOG_LEVEL", "warn")
	t.Cleanup(func() { _ = os.Unsetenv("REDIS_ADDR") })

	cfg, err := LoadConfig(dotenv)
	require.NoError(t, err)

	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfig_RejectsUnknownTimezone(t *testing.T) {
	t.Setenv("ORDER_ID_TIMEZONE", "Mars/Olympus_Mons")

	_, err := LoadConfig(missingDotEnv(t))
	assert.ErrorContains(t, err, "ORDER_ID_TIMEZONE")
}

func TestLoadConfig_RejectsEmptyRelayBatch(t *testing.T) {
	t.Setenv("OUTBOX_RELAY_BATCH_SIZE", "0")

	_, err := LoadConfig(missingDotEnv(t))
	assert.ErrorContains(t, err, "OUTBOX_RELAY_BATCH_SIZE")
}

func TestConfig_DSN(t *testing.T) {
	cfg := Config{
		DBHost:     "db",
		DBPort:     "5433",
		DBUser:     "bidding",
		DBPassword: "p@ss",
		DBName:     "marketplace",
		DBSslMode:  "require",
	}

	assert.Equal(t, "postgres://bidding:p%40ss@db:5433/marketplace?sslmode=require", cfg.DSN())
}

func TestConfig_LocationDefaultsToLocal(t *testing.T) {
	loc, err := Config{}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(Config{LogLevel: "debug", LogEncoding: "console"})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger(Config{LogLevel: "loud", LogEncoding: "json"})
	assert.ErrorContains(t, err, "LOG_LEVEL")

	_, err = NewLogger(Config{LogLevel: "info", LogEncoding: "xml"})
	assert.ErrorContains(t, err, "LOG_ENCODING")
}
