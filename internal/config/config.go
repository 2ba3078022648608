package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendTigerBeetle = "tigerbeetle"
	BackendMemory      = "memory"
)

// Config holds application configuration
type Config struct {
	HTTPAddr    string
	Environment string
	LogLevel    string

	Backend              string
	TigerBeetleClusterID uint64
	TigerBeetleAddresses []string
	StoreTimeout         time.Duration

	// KafkaBrokers is empty when events are disabled.
	KafkaBrokers     []string
	KafkaTopicPrefix string

	// DatabaseURL is empty when the journal is kept in memory.
	DatabaseURL string
}

// Load reads a .env file when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		Environment:          getEnv("APP_ENV", "development"),
		LogLevel:             os.Getenv("LOG_LEVEL"),
		Backend:              getEnv("LEDGER_BACKEND", BackendTigerBeetle),
		TigerBeetleAddresses: getEnvList("TB_ADDRESSES", "3000"),
		KafkaBrokers:         getEnvList("KAFKA_BROKERS", ""),
		KafkaTopicPrefix:     getEnv("KAFKA_TOPIC_PREFIX", "ledger"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
	}

	clusterID, err := strconv.ParseUint(getEnv("TB_CLUSTER_ID", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("TB_CLUSTER_ID: %w", err)
	}
	cfg.TigerBeetleClusterID = clusterID

	timeout, err := time.ParseDuration(getEnv("STORE_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("STORE_TIMEOUT: %w", err)
	}
	if timeout < 0 {
		return nil, fmt.Errorf("STORE_TIMEOUT: must not be negative, got %s", timeout)
	}
	cfg.StoreTimeout = timeout

	switch cfg.Backend {
	case BackendTigerBeetle, BackendMemory:
	default:
		return nil, fmt.Errorf("LEDGER_BACKEND: unknown backend %q", cfg.Backend)
	}
	if cfg.Backend == BackendTigerBeetle && len(cfg.TigerBeetleAddresses) == 0 {
		return nil, errors.New("TB_ADDRESSES: at least one replica address is required")
	}

	return cfg, nil
}

// EventsEnabled reports whether events should be published.
func (c *Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvList splits a comma-separated variable, dropping empty items.
func getEnvList(key, defaultValue string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, defaultValue), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
