package spool

import (
	"context"
	"log/slog"
	"time"

	"ismp-hq/crptgate/pkg/document"
	"ismp-hq/crptgate/pkg/document/render"
)

// SubmitFunc performs one submission. The worker supplies the decoded
// document, target format, and signature; the implementation is expected to
// route through the shared rate limiter.
type SubmitFunc func(ctx context.Context, doc *document.Document, format render.Format, signature string) error

// Worker drains the spool through a submit function.
type Worker struct {
	spool        *Spool
	submit       SubmitFunc
	pollInterval time.Duration
	logger       *slog.Logger
}

// NewWorker creates a spool worker. pollInterval is how long to sleep when
// the spool is empty; it defaults to 1 second.
func NewWorker(spool *Spool, submit SubmitFunc, pollInterval time.Duration) *Worker {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &Worker{
		spool:        spool,
		submit:       submit,
		pollInterval: pollInterval,
		logger:       slog.Default().With("component", "spool.worker"),
	}
}

// Run drains the spool until the context is cancelled. Submission errors
// mark the item for retry; only queue corruption stops the worker.
func (w *Worker) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		item, err := w.spool.Next(ctx)
		if err != nil {
			return err
		}
		if item == nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(w.pollInterval):
			}
			continue
		}

		format, err := render.ParseFormat(item.Format)
		if err != nil {
			// Unsubmittable item; count the attempt so it eventually
			// parks as failed instead of blocking the queue head.
			w.logger.Error("spool item has invalid format",
				"item_id", item.ID,
				"format", item.Format,
			)
			if err := w.spool.Fail(ctx, item.ID, err); err != nil {
				return err
			}
			continue
		}

		if err := w.submit(ctx, item.Document, format, item.Signature); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Warn("spool submission failed",
				"item_id", item.ID,
				"doc_id", item.Document.DocID,
				"attempts", item.Attempts+1,
				"error", err,
			)
			if err := w.spool.Fail(ctx, item.ID, err); err != nil {
				return err
			}
			continue
		}

		w.logger.Info("spool item submitted",
			"item_id", item.ID,
			"doc_id", item.Document.DocID,
		)
		if err := w.spool.Complete(ctx, item.ID); err != nil {
			return err
		}
	}
}
