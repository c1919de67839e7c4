// Package config handles loading taskboard.toml configuration files with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config keeps runtime settings for the server.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string `toml:"addr"`

	// DatabaseURL is the SQLite DSN.
	DatabaseURL string `toml:"database-url"`

	// JaegerAddr is the collector endpoint traces are exported to.
	// Empty disables exporting.
	JaegerAddr string `toml:"jaeger-addr"`

	// CacheTTLMinutes bounds how long a cached query result may serve.
	// An explicit 0 disables expiry; leaving it unset picks the default.
	CacheTTLMinutes *int `toml:"cache-ttl-minutes"`

	// ReportTime is the HH:MM local time of the daily overdue report.
	ReportTime string `toml:"report-time"`
}

// Load reads taskboard.toml from path if it exists, applies environment
// overrides, and fills in defaults. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Config{}

	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if _, err := toml.Decode(string(data), &cfg); err != nil {
				return cfg, fmt.Errorf("decode config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv("TASKBOARD_ADDR")); v != "" {
		cfg.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		cfg.DatabaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("JAEGER_ADDR")); v != "" {
		cfg.JaegerAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("CACHE_TTL_MINUTES")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("invalid CACHE_TTL_MINUTES %q", v)
		}
		cfg.CacheTTLMinutes = &n
	}
	if v := strings.TrimSpace(os.Getenv("REPORT_TIME")); v != "" {
		cfg.ReportTime = v
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8000"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "taskboard.db"
	}
	if cfg.CacheTTLMinutes == nil {
		minutes := 5
		cfg.CacheTTLMinutes = &minutes
	}
	if cfg.ReportTime == "" {
		cfg.ReportTime = "09:00"
	}

	return cfg, nil
}

// CacheTTL returns the cache lifetime as a duration. Zero means entries
// never expire.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLMinutes == nil {
		return 0
	}
	return time.Duration(*c.CacheTTLMinutes) * time.Minute
}
