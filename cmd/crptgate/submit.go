package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ismp-hq/crptgate/pkg/cli"
	"ismp-hq/crptgate/pkg/client"
	"ismp-hq/crptgate/pkg/document/render"
	"ismp-hq/crptgate/pkg/journal"
)

var submitFlags struct {
	file          string
	format        string
	signature     string
	signatureFile string
	timeout       time.Duration
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a commissioning document to the CRPT API",
	Long: `Submit a goods-commissioning document to the CRPT API.

The document is read from a JSON file, rendered into the requested wire
format, and sent with the detached signature in the X-Signature header.
The call blocks until the rate limiter admits it; use --timeout to bound
the wait.

Examples:
  # Submit as JSON (default format)
  crptgate submit --file doc.json --signature-file doc.sig

  # Submit as XML with a 10 second admission deadline
  crptgate submit --file doc.json --format xml --signature-file doc.sig --timeout 10s`,
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().StringVarP(&submitFlags.file, "file", "f", "", "document JSON file (required)")
	submitCmd.Flags().StringVar(&submitFlags.format, "format", "json", "wire format: json, csv, or xml")
	submitCmd.Flags().StringVar(&submitFlags.signature, "signature", "", "detached signature value")
	submitCmd.Flags().StringVar(&submitFlags.signatureFile, "signature-file", "", "file containing the detached signature")
	submitCmd.Flags().DurationVar(&submitFlags.timeout, "timeout", 0, "overall deadline including rate-limit wait (0 = no deadline)")
	submitCmd.MarkFlagRequired("file")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, err := render.ParseFormat(submitFlags.format)
	if err != nil {
		return cli.NewCommandError("submit", err)
	}

	doc, err := readDocument(submitFlags.file)
	if err != nil {
		return cli.NewCommandError("submit", err)
	}

	signature, err := readSignature(submitFlags.signature, submitFlags.signatureFile)
	if err != nil {
		return cli.NewCommandError("submit", err)
	}

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

	c, err := buildClient(cfg, opts...)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx := cli.SetupSignalHandler()
	if submitFlags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, submitFlags.timeout)
		defer cancel()
	}

	result, err := c.CreateDocument(ctx, doc, format, signature)
	if err != nil {
		return cli.NewCommandError("submit", err)
	}

	fmt.Printf("Document submitted (status %d", result.StatusCode)
	if result.DocumentID != "" {
		fmt.Printf(", registry id %s", result.DocumentID)
	}
	fmt.Printf(", waited %s)\n", result.Wait.Round(time.Millisecond))
	return nil
}
