package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnv_defaults(t *testing.T) {
	cfg := LoadEnv()
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.True(t, cfg.Ledger.AllowNegativeStock)
	assert.Equal(t, 10*time.Second, cfg.Ledger.OperationTimeout)
	assert.Equal(t, 3, cfg.Ledger.MaxRetries)
	assert.False(t, cfg.Kafka.Enabled)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadEnv_overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("LEDGER_ALLOW_NEGATIVE_STOCK", "false")
	t.Setenv("LEDGER_OPERATION_TIMEOUT", "750ms")
	t.Setenv("LEDGER_MAX_RETRIES", "5")
	t.Setenv("REPORT_CACHE_TTL", "120")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg := LoadEnv()
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.False(t, cfg.Ledger.AllowNegativeStock)
	assert.Equal(t, 750*time.Millisecond, cfg.Ledger.OperationTimeout)
	assert.Equal(t, 5, cfg.Ledger.MaxRetries)
	assert.Equal(t, 2*time.Minute, cfg.Report.CacheTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoadEnv_invalidValuesFallBack(t *testing.T) {
	t.Setenv("LEDGER_MAX_RETRIES", "many")
	t.Setenv("LEDGER_OPERATION_TIMEOUT", "soon")
	t.Setenv("REDIS_ENABLED", "maybe")

	cfg := LoadEnv()
	assert.Equal(t, 3, cfg.Ledger.MaxRetries)
	assert.Equal(t, 10*time.Second, cfg.Ledger.OperationTimeout)
	assert.False(t, cfg.Redis.Enabled)
}
