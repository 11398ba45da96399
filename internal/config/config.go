// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Upstream is one stocks service the capital-gains aggregator can query.
// Tag is the portfolio selector value that resolves to this service.
type Upstream struct {
	Tag     string
	BaseURL string
}

// Config holds application configuration for both binaries. Each service reads
// the fields it needs; unrelated fields keep their defaults.
type Config struct {
	Port     int
	LogLevel string
	DevMode  bool

	// Stocks service
	DataDir string // Base directory for the positions database

	// Price oracle
	NinjaAPIKey  string
	NinjaBaseURL string
	HTTPTimeout  time.Duration // Timeout for all outbound HTTP calls

	// Capital-gains service
	Upstreams     []Upstream // Ordered; resolution order for the portfolio selector
	ProbeSchedule string     // cron spec for the upstream reachability probe
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("STOCKFOLIO_DATA_DIR", "./data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	upstreams, err := parseUpstreams(getEnv("STOCKS_SERVICES", "stocks1=http://stocks1:8000"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:          getEnvAsInt("PORT", 8000),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DevMode:       getEnvAsBool("DEV_MODE", false),
		DataDir:       absDataDir,
		NinjaAPIKey:   getEnv("NINJA_API_KEY", ""),
		NinjaBaseURL:  getEnv("NINJA_API_URL", "https://api.api-ninjas.com/v1"),
		HTTPTimeout:   time.Duration(getEnvAsInt("HTTP_TIMEOUT_SECONDS", 10)) * time.Second,
		Upstreams:     upstreams,
		ProbeSchedule: getEnv("UPSTREAM_PROBE_SCHEDULE", "@every 1m"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseUpstreams parses the STOCKS_SERVICES value. The format is a
// comma-separated list of tag=baseURL pairs, e.g.
// "stocks1=http://stocks1:8000,stocks2=http://stocks2:8000".
// Order is preserved: it is the order upstreams are queried in.
func parseUpstreams(raw string) ([]Upstream, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var upstreams []Upstream
	seen := make(map[string]bool)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		tag, url, ok := strings.Cut(entry, "=")
		tag = strings.TrimSpace(tag)
		url = strings.TrimSpace(url)
		if !ok || tag == "" || url == "" {
			return nil, fmt.Errorf("invalid STOCKS_SERVICES entry %q (want tag=baseURL)", entry)
		}
		if seen[tag] {
			return nil, fmt.Errorf("duplicate STOCKS_SERVICES tag %q", tag)
		}
		seen[tag] = true
		upstreams = append(upstreams, Upstream{Tag: tag, BaseURL: strings.TrimRight(url, "/")})
	}
	return upstreams, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP timeout must be positive")
	}
	// NINJA_API_KEY is not required at startup; price lookups fail at request
	// time with a clear error when the oracle rejects the key.
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
