package config

import "time"

// Config is the root configuration for crptgate.
type Config struct {
	// API configures the CRPT endpoint and transport.
	API APIConfig `yaml:"api"`

	// RateLimit configures the client-side sliding-window limiter.
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	// Journal configures submission journaling.
	Journal JournalConfig `yaml:"journal"`

	// Spool configures the offline submission spool.
	Spool SpoolConfig `yaml:"spool"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// APIConfig configures the CRPT API client.
type APIConfig struct {
	// BaseURL is the document creation endpoint.
	BaseURL string `yaml:"base_url"`

	// AuthToken is the bearer token for the API.
	AuthToken string `yaml:"auth_token"`

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `yaml:"timeout"`

	// MaxIdleConns configures the connection pool.
	MaxIdleConns int `yaml:"max_idle_conns"`

	// MaxIdleConnsPerHost configures the connection pool.
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host"`

	// IdleConnTimeout configures the connection pool.
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`
}

// RateLimitConfig configures the sliding-window limiter.
type RateLimitConfig struct {
	// Limit is the maximum number of submissions per window.
	Limit int `yaml:"limit"`

	// Window is the rolling window duration.
	Window time.Duration `yaml:"window"`

	// MaxConcurrent caps in-flight submissions. Zero disables the cap.
	MaxConcurrent int `yaml:"max_concurrent"`
}

// JournalConfig configures submission journaling.
type JournalConfig struct {
	// Enabled controls whether submissions are journaled.
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend ("sqlite" or "memory").
	Backend string `yaml:"backend"`

	// SQLite configures the SQLite backend.
	SQLite JournalSQLiteConfig `yaml:"sqlite"`

	// Recorder configures the async write path.
	Recorder RecorderConfig `yaml:"recorder"`

	// Retention configures automatic pruning.
	Retention RetentionConfig `yaml:"retention"`
}

// JournalSQLiteConfig configures the journal's SQLite backend.
type JournalSQLiteConfig struct {
	// Path is the database file path.
	Path string `yaml:"path"`

	// MaxOpenConns caps open database connections.
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns caps idle database connections.
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables write-ahead logging.
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the SQLite busy timeout.
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RecorderConfig configures the async journal recorder.
type RecorderConfig struct {
	// Buffer is the size of the async write channel.
	Buffer int `yaml:"buffer"`

	// WriteTimeout bounds each storage write.
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// RetentionConfig configures journal pruning.
type RetentionConfig struct {
	// Days is how long records are kept.
	Days int `yaml:"days"`

	// Schedule is the cron expression for the prune job.
	Schedule string `yaml:"schedule"`

	// MaxRecords caps the journal size. Zero means no cap.
	MaxRecords int64 `yaml:"max_records"`
}

// SpoolConfig configures the offline submission spool.
type SpoolConfig struct {
	// Enabled controls whether the spool worker runs.
	Enabled bool `yaml:"enabled"`

	// Path is the spool database file path.
	Path string `yaml:"path"`

	// BusyTimeout is the SQLite busy timeout.
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// MaxAttempts is how many times an item is retried before parking.
	MaxAttempts int `yaml:"max_attempts"`

	// PollInterval is how often the worker checks for pending items
	// when the spool is empty.
	PollInterval time.Duration `yaml:"poll_interval"`
}

// TelemetryConfig configures logging and metrics.
type TelemetryConfig struct {
	// Logging configures structured logging.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `yaml:"level"`

	// Format is the output format ("json" or "text").
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Enabled controls whether the metrics server runs.
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the metrics server bind address.
	ListenAddress string `yaml:"listen_address"`

	// Path is the metrics endpoint path.
	Path string `yaml:"path"`
}
