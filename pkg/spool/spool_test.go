package spool

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"ismp-hq/crptgate/pkg/document"
	"ismp-hq/crptgate/pkg/document/render"
)

func newTestSpool(t *testing.T) *Spool {
	t.Helper()

	s, err := Open(Config{
		Path:        filepath.Join(t.TempDir(), "spool.db"),
		MaxAttempts: 2,
	})
	if err != nil {
		t.Fatalf("Failed to open spool: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testDoc(id string) *document.Document {
	return &document.Document{
		DocID:          id,
		DocType:        document.TypeIntroduceGoods,
		ParticipantINN: "7700000000",
	}
}

func TestSpool_EnqueueNextComplete(t *testing.T) {
	s := newTestSpool(t)
	ctx := context.Background()

	id1, err := s.Enqueue(ctx, testDoc("doc-1"), "json", "sig-1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Enqueue(ctx, testDoc("doc-2"), "xml", "sig-2"); err != nil {
		t.Fatal(err)
	}

	pending, err := s.Pending(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if pending != 2 {
		t.Errorf("Expected 2 pending, got %d", pending)
	}

	// FIFO order.
	item, err := s.Next(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if item == nil || item.ID != id1 {
		t.Fatalf("Expected first enqueued item, got %+v", item)
	}
	if item.Document.DocID != "doc-1" || item.Format != "json" || item.Signature != "sig-1" {
		t.Errorf("Item did not round-trip: %+v", item)
	}

	if err := s.Complete(ctx, item.ID); err != nil {
		t.Fatal(err)
	}

	item, err = s.Next(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if item == nil || item.Document.DocID != "doc-2" {
		t.Fatalf("Expected second item next, got %+v", item)
	}
}

func TestSpool_EmptyNextReturnsNil(t *testing.T) {
	s := newTestSpool(t)

	item, err := s.Next(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if item != nil {
		t.Errorf("Expected nil from empty spool, got %+v", item)
	}
}

func TestSpool_FailParksAfterMaxAttempts(t *testing.T) {
	s := newTestSpool(t)
	ctx := context.Background()

	id, err := s.Enqueue(ctx, testDoc("doc-1"), "json", "sig")
	if err != nil {
		t.Fatal(err)
	}

	cause := errors.New("connection refused")

	// First failure keeps the item pending.
	if err := s.Fail(ctx, id, cause); err != nil {
		t.Fatal(err)
	}
	item, err := s.Next(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if item == nil {
		t.Fatal("Expected item to stay pending after first failure")
	}
	if item.Attempts != 1 || item.LastError != "connection refused" {
		t.Errorf("Unexpected attempt bookkeeping: %+v", item)
	}

	// Second failure reaches MaxAttempts=2 and parks the item.
	if err := s.Fail(ctx, id, cause); err != nil {
		t.Fatal(err)
	}
	item, err = s.Next(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if item != nil {
		t.Errorf("Expected item parked as failed, got %+v", item)
	}
}

func TestWorker_DrainsSpool(t *testing.T) {
	s := newTestSpool(t)
	ctx := context.Background()

	for _, id := range []string{"doc-1", "doc-2", "doc-3"} {
		if _, err := s.Enqueue(ctx, testDoc(id), "json", "sig"); err != nil {
			t.Fatal(err)
		}
	}

	var submitted []string
	worker := NewWorker(s, func(ctx context.Context, doc *document.Document, format render.Format, signature string) error {
		submitted = append(submitted, doc.DocID)
		return nil
	}, 10*time.Millisecond)

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- worker.Run(runCtx) }()

	deadline := time.After(5 * time.Second)
	for {
		pending, err := s.Pending(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if pending == 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("Worker did not drain the spool")
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if len(submitted) != 3 || submitted[0] != "doc-1" {
		t.Errorf("Expected FIFO submission of 3 docs, got %v", submitted)
	}
}

func TestWorker_RetriesFailures(t *testing.T) {
	s := newTestSpool(t)
	ctx := context.Background()

	if _, err := s.Enqueue(ctx, testDoc("doc-1"), "json", "sig"); err != nil {
		t.Fatal(err)
	}

	attempts := 0
	worker := NewWorker(s, func(ctx context.Context, doc *document.Document, format render.Format, signature string) error {
		attempts++
		if attempts == 1 {
			return errors.New("transient")
		}
		return nil
	}, 10*time.Millisecond)

	runCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- worker.Run(runCtx) }()

	for {
		pending, err := s.Pending(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if pending == 0 {
			break
		}
		if runCtx.Err() != nil {
			t.Fatal("Worker did not retry and drain in time")
		}
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	<-done

	if attempts != 2 {
		t.Errorf("Expected 2 attempts, got %d", attempts)
	}
}
