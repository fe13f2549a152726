package journal

import (
	"context"
	"testing"
	"time"
)

func TestRecorder_WritesAsync(t *testing.T) {
	storage := NewMemoryStorage()
	recorder := NewRecorder(storage, nil)

	recorder.Record(&Record{
		DocID:       "doc-1",
		DocType:     "LP_INTRODUCE_GOODS",
		Format:      "json",
		Outcome:     OutcomeOK,
		StatusCode:  200,
		SubmittedAt: time.Now(),
	})
	recorder.Close()

	records, err := storage.List(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record after Close, got %d", len(records))
	}
	if records[0].ID == "" {
		t.Error("Expected recorder to assign a UUID")
	}
}

func TestRecorder_DropsWhenFull(t *testing.T) {
	storage := NewMemoryStorage()
	recorder := NewRecorder(storage, &RecorderConfig{
		Buffer:       1,
		WriteTimeout: time.Second,
	})

	// Flood faster than the writer can drain. With a buffer of one, at
	// least some of these must be dropped rather than block.
	for i := 0; i < 1000; i++ {
		recorder.Record(&Record{DocID: "doc", Outcome: OutcomeOK})
	}
	recorder.Close()

	stored, err := storage.Count(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stored+recorder.Dropped() != 1000 {
		t.Errorf("stored (%d) + dropped (%d) != 1000", stored, recorder.Dropped())
	}
}

func TestRecorder_CloseIdempotent(t *testing.T) {
	recorder := NewRecorder(NewMemoryStorage(), nil)
	recorder.Close()
	recorder.Close()
}
