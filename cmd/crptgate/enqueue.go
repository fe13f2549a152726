package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ismp-hq/crptgate/pkg/cli"
	"ismp-hq/crptgate/pkg/document/render"
	"ismp-hq/crptgate/pkg/spool"
)

var enqueueFlags struct {
	file          string
	format        string
	signature     string
	signatureFile string
}

var enqueueCmd = &cobra.Command{
	Use:   "enqueue",
	Short: "Queue a document for the background submission worker",
	Long: `Queue a goods-commissioning document in the offline spool.

The document is validated and stored durably; the worker started by
"crptgate run" submits spooled documents in order, honoring the rate
limit. Use this when submissions should survive process restarts or when
the API is temporarily unreachable.

Examples:
  crptgate enqueue --file doc.json --signature-file doc.sig
  crptgate enqueue --file doc.json --format csv --signature-file doc.sig`,
	RunE: runEnqueue,
}

func init() {
	rootCmd.AddCommand(enqueueCmd)

	enqueueCmd.Flags().StringVarP(&enqueueFlags.file, "file", "f", "", "document JSON file (required)")
	enqueueCmd.Flags().StringVar(&enqueueFlags.format, "format", "json", "wire format: json, csv, or xml")
	enqueueCmd.Flags().StringVar(&enqueueFlags.signature, "signature", "", "detached signature value")
	enqueueCmd.Flags().StringVar(&enqueueFlags.signatureFile, "signature-file", "", "file containing the detached signature")
	enqueueCmd.MarkFlagRequired("file")
}

func runEnqueue(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, err := render.ParseFormat(enqueueFlags.format)
	if err != nil {
		return cli.NewCommandError("enqueue", err)
	}

	doc, err := readDocument(enqueueFlags.file)
	if err != nil {
		return cli.NewCommandError("enqueue", err)
	}
	if err := doc.Validate(); err != nil {
		return cli.NewCommandError("enqueue", err)
	}

	signature, err := readSignature(enqueueFlags.signature, enqueueFlags.signatureFile)
	if err != nil {
		return cli.NewCommandError("enqueue", err)
	}

	sp, err := spool.Open(spool.Config{
		Path:        cfg.Spool.Path,
		BusyTimeout: cfg.Spool.BusyTimeout,
		MaxAttempts: cfg.Spool.MaxAttempts,
	})
	if err != nil {
		return cli.NewCommandError("enqueue", err)
	}
	defer sp.Close()

	ctx := context.Background()
	id, err := sp.Enqueue(ctx, doc, string(format), signature)
	if err != nil {
		return cli.NewCommandError("enqueue", err)
	}

	pending, _ := sp.Pending(ctx)
	fmt.Printf("Document queued (id %d, %d pending)\n", id, pending)
	return nil
}
