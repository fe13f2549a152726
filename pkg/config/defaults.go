package config

import "time"

// Default values for configuration fields.
const (
	// API defaults
	DefaultBaseURL             = "https://ismp.crpt.ru/api/v3/lk/documents/create"
	DefaultTimeout             = 30 * time.Second
	DefaultMaxIdleConns        = 10
	DefaultMaxIdleConnsPerHost = 10
	DefaultIdleConnTimeout     = 90 * time.Second

	// Rate limit defaults
	DefaultRateLimit     = 10
	DefaultRateWindow    = time.Second
	DefaultMaxConcurrent = 0 // unlimited

	// Journal defaults
	DefaultJournalEnabled              = true
	DefaultJournalBackend              = "sqlite"
	DefaultJournalSQLitePath           = "data/journal.db"
	DefaultJournalSQLiteMaxOpenConns   = 10
	DefaultJournalSQLiteMaxIdleConns   = 5
	DefaultJournalSQLiteWALMode        = true
	DefaultJournalSQLiteBusyTimeout    = 5 * time.Second
	DefaultJournalRecorderBuffer       = 1000
	DefaultJournalRecorderWriteTimeout = 5 * time.Second
	DefaultJournalRetentionDays        = 90
	DefaultJournalRetentionSchedule    = "0 3 * * *"
	DefaultJournalRetentionMaxRecords  = int64(0)

	// Spool defaults
	DefaultSpoolEnabled      = false
	DefaultSpoolPath         = "data/spool.db"
	DefaultSpoolBusyTimeout  = 5 * time.Second
	DefaultSpoolMaxAttempts  = 5
	DefaultSpoolPollInterval = time.Second

	// Telemetry defaults
	DefaultLoggingLevel         = "info"
	DefaultLoggingFormat        = "json"
	DefaultMetricsEnabled       = false
	DefaultMetricsListenAddress = "127.0.0.1:9090"
	DefaultMetricsPath          = "/metrics"
)

// ApplyDefaults fills in default values for unset configuration fields.
// It is called automatically by LoadConfig; call it directly only when
// building a Config programmatically.
func ApplyDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = DefaultTimeout
	}
	if cfg.API.MaxIdleConns == 0 {
		cfg.API.MaxIdleConns = DefaultMaxIdleConns
	}
	if cfg.API.MaxIdleConnsPerHost == 0 {
		cfg.API.MaxIdleConnsPerHost = DefaultMaxIdleConnsPerHost
	}
	if cfg.API.IdleConnTimeout == 0 {
		cfg.API.IdleConnTimeout = DefaultIdleConnTimeout
	}

	if cfg.RateLimit.Limit == 0 {
		cfg.RateLimit.Limit = DefaultRateLimit
	}
	if cfg.RateLimit.Window == 0 {
		cfg.RateLimit.Window = DefaultRateWindow
	}

	if cfg.Journal.Backend == "" {
		cfg.Journal.Backend = DefaultJournalBackend
	}
	if cfg.Journal.SQLite.Path == "" {
		cfg.Journal.SQLite.Path = DefaultJournalSQLitePath
	}
	if cfg.Journal.SQLite.MaxOpenConns == 0 {
		cfg.Journal.SQLite.MaxOpenConns = DefaultJournalSQLiteMaxOpenConns
	}
	if cfg.Journal.SQLite.MaxIdleConns == 0 {
		cfg.Journal.SQLite.MaxIdleConns = DefaultJournalSQLiteMaxIdleConns
	}
	if cfg.Journal.SQLite.BusyTimeout == 0 {
		cfg.Journal.SQLite.BusyTimeout = DefaultJournalSQLiteBusyTimeout
	}
	if cfg.Journal.Recorder.Buffer == 0 {
		cfg.Journal.Recorder.Buffer = DefaultJournalRecorderBuffer
	}
	if cfg.Journal.Recorder.WriteTimeout == 0 {
		cfg.Journal.Recorder.WriteTimeout = DefaultJournalRecorderWriteTimeout
	}
	if cfg.Journal.Retention.Days == 0 {
		cfg.Journal.Retention.Days = DefaultJournalRetentionDays
	}
	if cfg.Journal.Retention.Schedule == "" {
		cfg.Journal.Retention.Schedule = DefaultJournalRetentionSchedule
	}

	if cfg.Spool.Path == "" {
		cfg.Spool.Path = DefaultSpoolPath
	}
	if cfg.Spool.BusyTimeout == 0 {
		cfg.Spool.BusyTimeout = DefaultSpoolBusyTimeout
	}
	if cfg.Spool.MaxAttempts == 0 {
		cfg.Spool.MaxAttempts = DefaultSpoolMaxAttempts
	}
	if cfg.Spool.PollInterval == 0 {
		cfg.Spool.PollInterval = DefaultSpoolPollInterval
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
}
