package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"ismp-hq/crptgate/pkg/cli"
	"ismp-hq/crptgate/pkg/client"
	"ismp-hq/crptgate/pkg/config"
	"ismp-hq/crptgate/pkg/document"
	"ismp-hq/crptgate/pkg/document/render"
	"ismp-hq/crptgate/pkg/journal"
	"ismp-hq/crptgate/pkg/journal/retention"
	"ismp-hq/crptgate/pkg/spool"
	"ismp-hq/crptgate/pkg/telemetry/metrics"
)

var runFlags struct {
	watch  bool
	dryRun bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the spool worker and metrics endpoint",
	Long: `Run crptgate as a long-lived process.

The process drains the offline spool through the rate-limited client,
prunes the journal on the configured schedule, and (when enabled) serves
Prometheus metrics. It shuts down cleanly on SIGINT or SIGTERM.

Examples:
  # Run with default config
  crptgate run

  # Run with hot config reload
  crptgate run --watch

  # Validate config without starting
  crptgate run --dry-run`,
	RunE: runWorker,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runFlags.watch, "watch", false, "reload configuration when the file changes")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting")
}

func runWorker(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	config.SetConfig(cfg)

	if runFlags.dryRun {
		fmt.Println("Configuration valid")
		return nil
	}

	ctx := cli.SetupSignalHandler()

	slog.Info("starting crptgate",
		"version", Version,
		"rate_limit", cfg.RateLimit.Limit,
		"window", cfg.RateLimit.Window,
	)

	// Journal + recorder
	storage, err := openJournal(cfg)
	if err != nil {
		return err
	}
	var opts []client.Option
	var recorder *journal.Recorder
	if storage != nil {
		defer storage.Close()
		recorder = journal.NewRecorder(storage, &journal.RecorderConfig{
			Buffer:       cfg.Journal.Recorder.Buffer,
			WriteTimeout: cfg.Journal.Recorder.WriteTimeout,
		})
		defer recorder.Close()
		opts = append(opts, client.WithRecorder(recorder))
	}

	// Metrics
	var m *metrics.Metrics
	if cfg.Telemetry.Metrics.Enabled {
		m = metrics.New()
		opts = append(opts, client.WithMetrics(m))
	}

	if m != nil && recorder != nil {
		m.RegisterJournalDropped(recorder.Dropped)
	}

	c, err := buildClient(cfg, opts...)
	if err != nil {
		return err
	}
	defer c.Close()

	// Retention scheduler
	if storage != nil && cfg.Journal.Retention.Schedule != "" {
		pruner := retention.NewPruner(storage, &retention.Config{
			RetentionDays: cfg.Journal.Retention.Days,
			PruneSchedule: cfg.Journal.Retention.Schedule,
			MaxRecords:    cfg.Journal.Retention.MaxRecords,
		})
		scheduler := retention.NewScheduler(pruner)
		if err := scheduler.Start(ctx); err != nil {
			return cli.NewCommandError("run", err)
		}
		defer scheduler.Stop()
	}

	// Metrics server
	if m != nil {
		mux := http.NewServeMux()
		mux.Handle(cfg.Telemetry.Metrics.Path, m.Handler())
		server := &http.Server{
			Addr:    cfg.Telemetry.Metrics.ListenAddress,
			Handler: mux,
		}
		go func() {
			slog.Info("metrics server listening",
				"address", cfg.Telemetry.Metrics.ListenAddress,
				"path", cfg.Telemetry.Metrics.Path,
			)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(shutdownCtx)
		}()
	}

	// Config watcher
	if runFlags.watch {
		watcher, err := config.NewFileWatcher(cfgFile, config.DefaultDebounceInterval)
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		go watcher.Watch(ctx, func() error {
			return config.ReloadConfig(cfgFile)
		})
		defer watcher.Stop()
	}

	// Spool worker
	if cfg.Spool.Enabled {
		sp, err := spool.Open(spool.Config{
			Path:        cfg.Spool.Path,
			BusyTimeout: cfg.Spool.BusyTimeout,
			MaxAttempts: cfg.Spool.MaxAttempts,
		})
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		defer sp.Close()

		submit := func(ctx context.Context, doc *document.Document, format render.Format, signature string) error {
			_, err := c.CreateDocument(ctx, doc, format, signature)
			return err
		}
		worker := spool.NewWorker(sp, submit, cfg.Spool.PollInterval)

		if m != nil {
			go func() {
				ticker := time.NewTicker(10 * time.Second)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						if pending, err := sp.Pending(ctx); err == nil {
							m.SetSpoolPending(pending)
						}
					}
				}
			}()
		}

		slog.Info("spool worker started", "path", cfg.Spool.Path)
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return cli.NewCommandError("run", err)
		}
	} else {
		<-ctx.Done()
	}

	slog.Info("shutting down")
	return nil
}
