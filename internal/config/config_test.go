package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("COUNTER_ID", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("POSTGRES_DSN", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "01", cfg.Counter.ID)
	assert.Equal(t, 5, cfg.Counter.HistorySize)
	assert.Empty(t, cfg.Postgres.DSN)
	assert.Nil(t, cfg.Kafka.Brokers)
	assert.Equal(t, "counter.panel", cfg.Redis.PanelChannel)
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("COUNTER_ID", "03")
	t.Setenv("COUNTER_HISTORY_SIZE", "8")
	t.Setenv("COUNTER_RANDOM_SEED", "1234")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "03", cfg.Counter.ID)
	assert.Equal(t, 8, cfg.Counter.HistorySize)
	assert.Equal(t, int64(1234), cfg.Counter.RandomSeed)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "127.0.0.1:9000", cfg.App.Addr())
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("REDIS_DB", "zero")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("REDIS_DB", "0")
	t.Setenv("COUNTER_RANDOM_SEED", "abc")
	_, err = Load()
	require.Error(t, err)
}

func TestAppConfig_RequestTimeoutDisabled(t *testing.T) {
	assert.Equal(t, time.Duration(0), AppConfig{}.RequestTimeout())
}
