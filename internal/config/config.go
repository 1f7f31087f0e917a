// Package config holds the environment-driven configuration for the
// flowcore server binary
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/flowcore/engine/pkg/api"
)

type (
	// Config holds configuration settings for the flow engine server
	Config struct {
		// API Server
		APIHost  string
		APIPort  int
		LogLevel string

		// Model services
		OpenAIKey     string
		OpenAIBaseURL string

		// Retrieval
		RedisAddr     string
		RedisPassword string
		RedisDB       int

		// Secrets
		VaultAddr   string
		VaultToken  string
		VaultPrefix string

		// Archiving
		ArchiveBucketURL string
		ArchivePrefix    string

		// Run budgets
		MaxSteps   int
		RunTimeout time.Duration

		ShutdownTimeout time.Duration
	}
)

const (
	DefaultAPIHost = "0.0.0.0"
	DefaultAPIPort = 8080
	MaxTCPPort     = 65535

	DefaultRedisDB       = 0
	DefaultArchivePrefix = "runs/"
	DefaultVaultPrefix   = "secret"

	DefaultShutdownTimeout = 10 * time.Second

	MaxMaxSteps   = 1_000_000
	MaxRunTimeout = 24 * time.Hour
)

var (
	ErrInvalidAPIPort    = errors.New("invalid API port")
	ErrInvalidMaxSteps   = errors.New("max steps must be positive")
	ErrInvalidRunTimeout = errors.New("run timeout must be positive")
)

// NewDefaultConfig creates a configuration with sensible defaults for a
// local deployment
func NewDefaultConfig() *Config {
	return &Config{
		APIHost:         DefaultAPIHost,
		APIPort:         DefaultAPIPort,
		LogLevel:        "info",
		RedisDB:         DefaultRedisDB,
		VaultPrefix:     DefaultVaultPrefix,
		ArchivePrefix:   DefaultArchivePrefix,
		MaxSteps:        api.DefaultMaxSteps,
		RunTimeout:      api.DefaultTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// LoadFromEnv populates configuration values from environment variables.
// Returns an error if any env var cannot be parsed
func (c *Config) LoadFromEnv() error {
	loadEnvString("API_HOST", &c.APIHost)
	loadEnvString("LOG_LEVEL", &c.LogLevel)
	loadEnvString("OPENAI_API_KEY", &c.OpenAIKey)
	loadEnvString("OPENAI_BASE_URL", &c.OpenAIBaseURL)
	loadEnvString("REDIS_ADDR", &c.RedisAddr)
	loadEnvString("REDIS_PASSWORD", &c.RedisPassword)
	loadEnvString("VAULT_ADDR", &c.VaultAddr)
	loadEnvString("VAULT_TOKEN", &c.VaultToken)
	loadEnvString("VAULT_PREFIX", &c.VaultPrefix)
	loadEnvString("ARCHIVE_BUCKET_URL", &c.ArchiveBucketURL)
	loadEnvString("ARCHIVE_PREFIX", &c.ArchivePrefix)

	if err := loadEnvInt("API_PORT", &c.APIPort, 0, MaxTCPPort); err != nil {
		return err
	}
	if err := loadEnvInt("REDIS_DB", &c.RedisDB, -1, 15); err != nil {
		return err
	}
	if err := loadEnvInt("MAX_STEPS", &c.MaxSteps, 0, MaxMaxSteps); err != nil {
		return err
	}

	if err := loadEnvDuration("RUN_TIMEOUT", &c.RunTimeout); err != nil {
		return err
	}
	return loadEnvDuration("SHUTDOWN_TIMEOUT", &c.ShutdownTimeout)
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.APIPort <= 0 || c.APIPort > MaxTCPPort {
		return fmt.Errorf("%w: %d", ErrInvalidAPIPort, c.APIPort)
	}
	if c.MaxSteps <= 0 {
		return ErrInvalidMaxSteps
	}
	if c.RunTimeout <= 0 || c.RunTimeout > MaxRunTimeout {
		return ErrInvalidRunTimeout
	}
	return nil
}

// Options converts the configured run budgets into execution options
func (c *Config) Options() api.Options {
	return api.Options{
		MaxSteps: c.MaxSteps,
		Timeout:  c.RunTimeout,
	}
}

func loadEnvString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// loadEnvInt reads key from the environment, parses it as an integer, and
// sets *dst if the value is in the range (min, max). Returns an error if
// the value cannot be parsed or falls outside the valid range
func loadEnvInt(key string, dst *int, min, max int) error {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, s)
	}
	if v <= min || v > max {
		return fmt.Errorf("invalid %s: %d out of range [%d, %d]",
			key, v, min+1, max)
	}
	*dst = v
	return nil
}

func loadEnvDuration(key string, dst *time.Duration) error {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, s)
	}
	if d <= 0 {
		return fmt.Errorf("invalid %s: must be positive", key)
	}
	*dst = d
	return nil
}
