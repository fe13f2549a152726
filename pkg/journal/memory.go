package journal

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStorage implements Storage with an in-memory slice.
// It is intended for tests and for running without a journal file.
type MemoryStorage struct {
	mu      sync.RWMutex
	records []*Record
}

// NewMemoryStorage creates an in-memory journal backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Store implements Storage.
func (s *MemoryStorage) Store(ctx context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *record
	s.records = append(s.records, &cp)
	return nil
}

// List implements Storage. Results are newest first.
func (s *MemoryStorage) List(ctx context.Context, query *Query) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if query == nil {
		query = &Query{}
	}

	var matched []*Record
	for _, r := range s.records {
		if query.Outcome != "" && r.Outcome != query.Outcome {
			continue
		}
		if !query.Since.IsZero() && r.SubmittedAt.Before(query.Since) {
			continue
		}
		cp := *r
		matched = append(matched, &cp)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].SubmittedAt.After(matched[j].SubmittedAt)
	})

	if query.Offset > 0 {
		if query.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[query.Offset:]
	}
	if query.Limit > 0 && len(matched) > query.Limit {
		matched = matched[:query.Limit]
	}

	return matched, nil
}

// Count implements Storage.
func (s *MemoryStorage) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.records)), nil
}

// DeleteBefore implements Storage.
func (s *MemoryStorage) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	var deleted int64
	for _, r := range s.records {
		if r.SubmittedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	s.records = kept
	return deleted, nil
}

// Close implements Storage.
func (s *MemoryStorage) Close() error {
	return nil
}
