// Package config handles application configuration via environment variables.
// It uses kelseyhightower/envconfig for parsing and provides sensible defaults.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
// Values are loaded from environment variables with the prefix "APP".
// Example: APP_PORT=8080, APP_LOG_LEVEL=debug
type Config struct {
	// Server configuration (embedded to flatten env vars)
	Server ServerConfig

	// Database configuration (embedded to flatten env vars)
	Database DatabaseConfig

	// Logging configuration (embedded to flatten env vars)
	Log LogConfig

	// Kafka event bus configuration
	Kafka KafkaConfig

	// Per-client request rate limiting
	RateLimit RateLimitConfig

	// Super-admin seeded on startup
	Bootstrap BootstrapConfig

	// Values reported by the status endpoint
	Status StatusConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Port is the HTTP server port (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// Host is the HTTP server host (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// ReadTimeout is the maximum duration for reading the entire request (default: 10s)
	ReadTimeout time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`

	// WriteTimeout is the maximum duration before timing out writes of the response (default: 30s)
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`

	// ShutdownTimeout is the maximum duration to wait for active connections to finish (default: 30s)
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	// Host is the database host (default: localhost)
	Host string `envconfig:"DB_HOST" default:"localhost"`

	// Port is the database port (default: 5432)
	Port int `envconfig:"DB_PORT" default:"5432"`

	// User is the database user (default: postgres)
	User string `envconfig:"DB_USER" default:"postgres"`

	// Password is the database password (required in production)
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`

	// Name is the database name (default: candlepin)
	Name string `envconfig:"DB_NAME" default:"candlepin"`

	// SSLMode is the SSL mode for the connection (default: disable)
	SSLMode string `envconfig:"DB_SSLMODE" default:"disable"`

	// MaxOpenConns is the maximum number of open connections (default: 25)
	MaxOpenConns int `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`

	// MaxIdleConns is the maximum number of idle connections (default: 5)
	MaxIdleConns int `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`

	// ConnMaxLifetime is the maximum lifetime of a connection (default: 5m)
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`

	// ConnectTimeout bounds the retries while waiting for the database (default: 1m)
	ConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"1m"`

	// Storage selects the document store: postgres or memory (default: postgres)
	Storage string `envconfig:"STORAGE" default:"postgres"`
}

// UsesMemory reports whether documents are kept in process memory.
func (c *DatabaseConfig) UsesMemory() bool {
	return c.Storage == "memory"
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is the log level: debug, info, warn, error (default: info)
	Level string `envconfig:"LOG_LEVEL" default:"info"`

	// Format is the log format: json, text (default: json)
	Format string `envconfig:"LOG_FORMAT" default:"plain"`
}

// KafkaConfig holds event bus settings. Events are only logged when no
// brokers are configured.
type KafkaConfig struct {
	// Brokers is a comma separated list of broker addresses
	Brokers []string `envconfig:"KAFKA_BROKERS"`

	// Topic receives one message per event (default: candlepin.events)
	Topic string `envconfig:"KAFKA_TOPIC" default:"candlepin.events"`

	// ClientID identifies this server to the brokers (default: candlepin)
	ClientID string `envconfig:"KAFKA_CLIENT_ID" default:"candlepin"`

	// ConnectTimeout bounds the retries while waiting for the brokers (default: 1m)
	ConnectTimeout time.Duration `envconfig:"KAFKA_CONNECT_TIMEOUT" default:"1m"`
}

// Enabled reports whether any broker is configured.
func (c *KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

// RateLimitConfig holds per-client request limits. A zero RPS disables limiting.
type RateLimitConfig struct {
	RPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"50"`
	Burst int     `envconfig:"RATE_LIMIT_BURST" default:"100"`
}

// BootstrapConfig holds the super-admin created on startup when missing.
type BootstrapConfig struct {
	AdminUsername string `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"admin"`
}

// StatusConfig holds the values reported by GET /status.
type StatusConfig struct {
	Version    string `envconfig:"VERSION" default:"4.4.0"`
	Release    string `envconfig:"RELEASE" default:"1"`
	Standalone bool   `envconfig:"STANDALONE" default:"true"`
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// Addr returns the server address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from environment variables.
// It returns an error if required variables are missing or invalid.
func Load() (*Config, error) {
	var cfg Config

	// Load each config section separately to flatten env var names
	// This allows env vars like APP_PORT instead of APP_SERVER_PORT
	if err := envconfig.Process("APP", &cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to load log config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.Kafka); err != nil {
		return nil, fmt.Errorf("failed to load kafka config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.RateLimit); err != nil {
		return nil, fmt.Errorf("failed to load rate limit config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.Bootstrap); err != nil {
		return nil, fmt.Errorf("failed to load bootstrap config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.Status); err != nil {
		return nil, fmt.Errorf("failed to load status config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration and panics on error.
// Use this only in main.go during startup.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
