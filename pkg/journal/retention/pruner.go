package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ismp-hq/crptgate/pkg/journal"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// RetentionDays is the number of days to retain journal records.
	// 0 means keep records forever (no age-based pruning).
	RetentionDays int

	// PruneSchedule is a cron expression for scheduled pruning.
	// Example: "0 3 * * *" (daily at 3 AM). Empty disables the scheduler.
	PruneSchedule string

	// MaxRecords is the maximum number of records to keep.
	// 0 means unlimited.
	MaxRecords int64
}

// DefaultConfig returns the default retention configuration.
func DefaultConfig() *Config {
	return &Config{
		RetentionDays: 90,
		PruneSchedule: "0 3 * * *",
		MaxRecords:    0,
	}
}

// Pruner enforces retention policy on journal records.
type Pruner struct {
	storage journal.Storage
	config  *Config
	logger  *slog.Logger
}

// NewPruner creates a retention pruner over the given journal storage.
func NewPruner(storage journal.Storage, config *Config) *Pruner {
	if config == nil {
		config = DefaultConfig()
	}
	return &Pruner{
		storage: storage,
		config:  config,
		logger:  slog.Default().With("component", "journal.retention"),
	}
}

// Config returns the pruner's configuration.
func (p *Pruner) Config() *Config {
	return p.config
}

// Prune deletes journal records older than the retention period, then trims
// the journal to MaxRecords if configured. Returns the total number of
// records deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var totalDeleted int64

	if p.config.RetentionDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -p.config.RetentionDays)
		deleted, err := p.storage.DeleteBefore(ctx, cutoff)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by age failed: %w", err)
		}
		totalDeleted += deleted
		p.logger.Info("pruned journal records by age",
			"deleted_count", deleted,
			"retention_days", p.config.RetentionDays,
		)
	}

	if p.config.MaxRecords > 0 {
		deleted, err := p.pruneByCount(ctx)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by count failed: %w", err)
		}
		totalDeleted += deleted
		p.logger.Info("pruned journal records by count",
			"deleted_count", deleted,
			"max_records", p.config.MaxRecords,
		)
	}

	return totalDeleted, nil
}

// pruneByCount deletes the oldest records until at most MaxRecords remain.
func (p *Pruner) pruneByCount(ctx context.Context) (int64, error) {
	count, err := p.storage.Count(ctx)
	if err != nil {
		return 0, err
	}
	excess := count - p.config.MaxRecords
	if excess <= 0 {
		return 0, nil
	}

	// Find the cutoff time of the newest record that must go: list oldest
	// first by walking from the end of a newest-first listing.
	records, err := p.storage.List(ctx, &journal.Query{})
	if err != nil {
		return 0, err
	}
	if int64(len(records)) <= p.config.MaxRecords {
		return 0, nil
	}

	// records is newest first; everything past MaxRecords is excess.
	cutoff := records[p.config.MaxRecords-1].SubmittedAt
	return p.storage.DeleteBefore(ctx, cutoff)
}
