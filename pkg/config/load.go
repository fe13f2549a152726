package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides. Environment variables follow
// the naming convention CRPTGATE_SECTION_FIELD (e.g.
// CRPTGATE_API_AUTH_TOKEN) and always take precedence over file values.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables use the format CRPTGATE_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// API overrides
	if val := os.Getenv("CRPTGATE_API_BASE_URL"); val != "" {
		cfg.API.BaseURL = val
	}
	if val := os.Getenv("CRPTGATE_API_AUTH_TOKEN"); val != "" {
		cfg.API.AuthToken = val
	}
	if val := os.Getenv("CRPTGATE_API_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.API.Timeout = d
		}
	}

	// Rate limit overrides
	if val := os.Getenv("CRPTGATE_RATE_LIMIT_LIMIT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.RateLimit.Limit = i
		}
	}
	if val := os.Getenv("CRPTGATE_RATE_LIMIT_WINDOW"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.RateLimit.Window = d
		}
	}
	if val := os.Getenv("CRPTGATE_RATE_LIMIT_MAX_CONCURRENT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.RateLimit.MaxConcurrent = i
		}
	}

	// Journal overrides
	if val := os.Getenv("CRPTGATE_JOURNAL_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Journal.Enabled = b
		}
	}
	if val := os.Getenv("CRPTGATE_JOURNAL_BACKEND"); val != "" {
		cfg.Journal.Backend = val
	}
	if val := os.Getenv("CRPTGATE_JOURNAL_SQLITE_PATH"); val != "" {
		cfg.Journal.SQLite.Path = val
	}
	if val := os.Getenv("CRPTGATE_JOURNAL_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Journal.Retention.Days = i
		}
	}
	if val := os.Getenv("CRPTGATE_JOURNAL_RETENTION_SCHEDULE"); val != "" {
		cfg.Journal.Retention.Schedule = val
	}

	// Spool overrides
	if val := os.Getenv("CRPTGATE_SPOOL_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Spool.Enabled = b
		}
	}
	if val := os.Getenv("CRPTGATE_SPOOL_PATH"); val != "" {
		cfg.Spool.Path = val
	}
	if val := os.Getenv("CRPTGATE_SPOOL_MAX_ATTEMPTS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Spool.MaxAttempts = i
		}
	}

	// Telemetry overrides
	if val := os.Getenv("CRPTGATE_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("CRPTGATE_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("CRPTGATE_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("CRPTGATE_TELEMETRY_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}
}
