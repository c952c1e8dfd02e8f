package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "candlepin", cfg.Database.Name)
	assert.False(t, cfg.Database.UsesMemory())
	assert.Equal(t, time.Minute, cfg.Database.ConnectTimeout)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "candlepin.events", cfg.Kafka.Topic)
	assert.Equal(t, "admin", cfg.Bootstrap.AdminUsername)
}

func TestLoad_FlattenedEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_STORAGE", "memory")
	t.Setenv("APP_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("APP_RATE_LIMIT_RPS", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Database.UsesMemory())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.InDelta(t, 2.5, cfg.RateLimit.RPS, 0.001)
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{User: "u", Password: "p", Host: "db", Port: 5433, Name: "cp", SSLMode: "require"}
	assert.Equal(t, "postgres://u:p@db:5433/cp?sslmode=require", c.DSN())
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("APP_PORT", "not-a-number")
	_, err := Load()
	assert.Error(t, err)
}
