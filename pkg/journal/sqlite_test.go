package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestSQLite(t *testing.T) *SQLiteStorage {
	t.Helper()

	cfg := DefaultSQLiteConfig()
	cfg.Path = filepath.Join(t.TempDir(), "journal.db")

	s, err := NewSQLiteStorage(cfg)
	if err != nil {
		t.Fatalf("Failed to create SQLite storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStorage_RoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()
	now := time.Now()

	record := &Record{
		ID:           "rec-1",
		DocID:        "doc-1",
		DocType:      "LP_INTRODUCE_GOODS",
		Format:       "xml",
		Outcome:      OutcomeRejected,
		StatusCode:   400,
		Error:        "bad signature",
		WaitDuration: 250 * time.Millisecond,
		SubmittedAt:  now,
	}
	if err := s.Store(ctx, record); err != nil {
		t.Fatal(err)
	}

	records, err := s.List(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	got := records[0]
	if got.ID != "rec-1" || got.DocID != "doc-1" || got.Format != "xml" {
		t.Errorf("Unexpected record: %+v", got)
	}
	if got.Outcome != OutcomeRejected || got.StatusCode != 400 {
		t.Errorf("Unexpected outcome: %+v", got)
	}
	if got.Error != "bad signature" {
		t.Errorf("Unexpected error text: %q", got.Error)
	}
	if got.WaitDuration != 250*time.Millisecond {
		t.Errorf("Unexpected wait duration: %s", got.WaitDuration)
	}
	if !got.SubmittedAt.Equal(now) {
		t.Errorf("Unexpected submitted_at: %s != %s", got.SubmittedAt, now)
	}
}

func TestSQLiteStorage_FilterAndPrune(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()
	now := time.Now()

	for i, r := range []*Record{
		{ID: "a", DocID: "doc-a", DocType: "T", Format: "json", Outcome: OutcomeOK, SubmittedAt: now.Add(-72 * time.Hour)},
		{ID: "b", DocID: "doc-b", DocType: "T", Format: "csv", Outcome: OutcomeError, SubmittedAt: now.Add(-time.Hour)},
		{ID: "c", DocID: "doc-c", DocType: "T", Format: "json", Outcome: OutcomeOK, SubmittedAt: now},
	} {
		if err := s.Store(ctx, r); err != nil {
			t.Fatalf("Store %d failed: %v", i, err)
		}
	}

	ok, err := s.List(ctx, &Query{Outcome: OutcomeOK})
	if err != nil {
		t.Fatal(err)
	}
	if len(ok) != 2 || ok[0].ID != "c" {
		t.Errorf("Expected [c a], got %+v", ok)
	}

	limited, err := s.List(ctx, &Query{Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].ID != "c" {
		t.Errorf("Expected newest record only, got %+v", limited)
	}

	deleted, err := s.DeleteBefore(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 1 {
		t.Errorf("Expected 1 deleted, got %d", deleted)
	}

	count, err := s.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("Expected 2 remaining, got %d", count)
	}
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	if _, err := NewSQLiteStorage(&SQLiteConfig{}); err == nil {
		t.Error("Expected error for empty path")
	}
}
