package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Validate checks the configuration for errors. It assumes defaults have
// already been applied.
func Validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", cfg.API.Timeout)
	}

	if cfg.RateLimit.Limit <= 0 {
		return fmt.Errorf("rate_limit.limit must be positive, got %d", cfg.RateLimit.Limit)
	}
	if cfg.RateLimit.Window <= 0 {
		return fmt.Errorf("rate_limit.window must be positive, got %s", cfg.RateLimit.Window)
	}
	if cfg.RateLimit.MaxConcurrent < 0 {
		return fmt.Errorf("rate_limit.max_concurrent must not be negative, got %d", cfg.RateLimit.MaxConcurrent)
	}

	if cfg.Journal.Enabled {
		switch cfg.Journal.Backend {
		case "sqlite", "memory":
		default:
			return fmt.Errorf("journal.backend must be sqlite or memory, got %q", cfg.Journal.Backend)
		}
		if cfg.Journal.Backend == "sqlite" && cfg.Journal.SQLite.Path == "" {
			return fmt.Errorf("journal.sqlite.path must not be empty")
		}
		if cfg.Journal.Retention.Days < 0 {
			return fmt.Errorf("journal.retention.days must not be negative, got %d", cfg.Journal.Retention.Days)
		}
		if cfg.Journal.Retention.Schedule != "" {
			if _, err := cron.ParseStandard(cfg.Journal.Retention.Schedule); err != nil {
				return fmt.Errorf("journal.retention.schedule is not a valid cron expression: %w", err)
			}
		}
	}

	if cfg.Spool.Enabled {
		if cfg.Spool.Path == "" {
			return fmt.Errorf("spool.path must not be empty")
		}
		if cfg.Spool.MaxAttempts <= 0 {
			return fmt.Errorf("spool.max_attempts must be positive, got %d", cfg.Spool.MaxAttempts)
		}
		if cfg.Spool.PollInterval <= 0 {
			return fmt.Errorf("spool.poll_interval must be positive, got %s", cfg.Spool.PollInterval)
		}
	}

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("telemetry.logging.level must be debug, info, warn, or error, got %q", cfg.Telemetry.Logging.Level)
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("telemetry.logging.format must be json or text, got %q", cfg.Telemetry.Logging.Format)
	}
	if cfg.Telemetry.Metrics.Enabled && cfg.Telemetry.Metrics.ListenAddress == "" {
		return fmt.Errorf("telemetry.metrics.listen_address must not be empty")
	}

	return nil
}
