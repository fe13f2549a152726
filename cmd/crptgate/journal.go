package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ismp-hq/crptgate/pkg/cli"
	"ismp-hq/crptgate/pkg/journal"
)

var journalFlags struct {
	outcome string
	since   time.Duration
	limit   int
	output  string
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "List journaled submissions",
	Long: `List submission records from the journal, newest first.

Examples:
  # Last 20 submissions
  crptgate journal --limit 20

  # Rejected submissions in the last 24 hours, as JSON
  crptgate journal --outcome rejected --since 24h --output json`,
	RunE: runJournal,
}

func init() {
	rootCmd.AddCommand(journalCmd)

	journalCmd.Flags().StringVar(&journalFlags.outcome, "outcome", "", "filter by outcome: ok, rejected, or error")
	journalCmd.Flags().DurationVar(&journalFlags.since, "since", 0, "only records newer than this age (e.g. 24h)")
	journalCmd.Flags().IntVar(&journalFlags.limit, "limit", 50, "maximum records to list")
	journalCmd.Flags().StringVarP(&journalFlags.output, "output", "o", "text", "output format: text or json")
}

func runJournal(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	storage, err := openJournal(cfg)
	if err != nil {
		return err
	}
	if storage == nil {
		return cli.NewConfigError("journal.enabled", "journaling is disabled")
	}
	defer storage.Close()

	query := &journal.Query{
		Outcome: journal.Outcome(journalFlags.outcome),
		Limit:   journalFlags.limit,
	}
	if journalFlags.since > 0 {
		query.Since = time.Now().Add(-journalFlags.since)
	}

	records, err := storage.List(context.Background(), query)
	if err != nil {
		return cli.NewCommandError("journal", err)
	}

	if journalFlags.output == "json" {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, records)
	}

	if len(records) == 0 {
		fmt.Println("No journal records found")
		return nil
	}
	for _, rec := range records {
		fmt.Printf("%s  %-8s  %-4s  status=%d  wait=%s  doc=%s",
			rec.SubmittedAt.Format(time.RFC3339),
			rec.Outcome,
			rec.Format,
			rec.StatusCode,
			rec.WaitDuration.Round(time.Millisecond),
			rec.DocID,
		)
		if rec.Error != "" {
			fmt.Printf("  error=%q", rec.Error)
		}
		fmt.Println()
	}
	return nil
}
