package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"ismp-hq/crptgate/pkg/cli"
	"ismp-hq/crptgate/pkg/client"
	"ismp-hq/crptgate/pkg/config"
	"ismp-hq/crptgate/pkg/document"
	"ismp-hq/crptgate/pkg/journal"
	"ismp-hq/crptgate/pkg/telemetry/logging"
)

// loadConfig loads the configuration file and installs the configured
// logger. The --verbose flag forces debug logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	level := cfg.Telemetry.Logging.Level
	if verbose {
		level = "debug"
	}
	if _, err := logging.Setup(logging.Config{
		Level:  level,
		Format: cfg.Telemetry.Logging.Format,
	}); err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}

	return cfg, nil
}

// openJournal builds the configured journal storage backend, or returns
// nil when journaling is disabled.
func openJournal(cfg *config.Config) (journal.Storage, error) {
	if !cfg.Journal.Enabled {
		return nil, nil
	}

	switch cfg.Journal.Backend {
	case "memory":
		return journal.NewMemoryStorage(), nil
	case "sqlite":
		return journal.NewSQLiteStorage(&journal.SQLiteConfig{
			Path:         cfg.Journal.SQLite.Path,
			MaxOpenConns: cfg.Journal.SQLite.MaxOpenConns,
			MaxIdleConns: cfg.Journal.SQLite.MaxIdleConns,
			WALMode:      cfg.Journal.SQLite.WALMode,
			BusyTimeout:  cfg.Journal.SQLite.BusyTimeout,
		})
	default:
		return nil, cli.NewConfigError("journal.backend", fmt.Sprintf("unknown backend %q", cfg.Journal.Backend))
	}
}

// buildClient constructs the submission client from configuration, with
// an optional journal recorder attached.
func buildClient(cfg *config.Config, opts ...client.Option) (*client.Client, error) {
	return client.New(client.Config{
		BaseURL:             cfg.API.BaseURL,
		AuthToken:           cfg.API.AuthToken,
		RequestLimit:        cfg.RateLimit.Limit,
		Window:              cfg.RateLimit.Window,
		MaxConcurrent:       cfg.RateLimit.MaxConcurrent,
		Timeout:             cfg.API.Timeout,
		MaxIdleConns:        cfg.API.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.API.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.API.IdleConnTimeout,
	}, opts...)
}

// readDocument reads and decodes a document JSON file.
func readDocument(path string) (*document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document file %q: %w", path, err)
	}
	var doc document.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document file %q: %w", path, err)
	}
	return &doc, nil
}

// readSignature resolves the detached signature from either the literal
// flag or a file. The file contents are trimmed of trailing whitespace.
func readSignature(literal, file string) (string, error) {
	if literal != "" {
		return literal, nil
	}
	if file == "" {
		return "", nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read signature file %q: %w", file, err)
	}
	return strings.TrimSpace(string(data)), nil
}
