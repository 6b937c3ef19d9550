package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	SolveTimeout       time.Duration
	MaxRequestBodySize int64
	MaxBatchSources    int
	SeederType         string
	PresetsPath        string
}

func (c *Config) ServerAddress() string {
	// Trim any whitespace from host and port
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

func LoadFromEnv() (*Config, error) {
	// Set defaults
	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		SolveTimeout:       parseDurationOrDefault("SOLVE_TIMEOUT", 20*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 4*1024*1024), // 4MB
		MaxBatchSources:    int(parseIntOrDefault("MAX_BATCH_SOURCES", 4096)),
		SeederType:         getEnvOrDefault("SEEDER_TYPE", "grid"),
		PresetsPath:        os.Getenv("SOLVER_PRESETS_PATH"),
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.MaxBatchSources <= 0 {
		return nil, fmt.Errorf("MAX_BATCH_SOURCES must be > 0 (got %d)", cfg.MaxBatchSources)
	}
	if cfg.RequestTimeout <= 0 || cfg.SolveTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, solve=%s)",
			cfg.RequestTimeout, cfg.SolveTimeout)
	}
	if cfg.SeederType != "grid" && cfg.SeederType != "halton" {
		return nil, fmt.Errorf("invalid SEEDER_TYPE: %q (want grid or halton)", cfg.SeederType)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
