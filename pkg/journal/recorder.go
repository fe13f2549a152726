package journal

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// RecorderConfig contains configuration for the async journal recorder.
type RecorderConfig struct {
	// Buffer is the size of the async write channel.
	// Default: 1000
	Buffer int

	// WriteTimeout bounds each storage write.
	// Default: 5 seconds
	WriteTimeout time.Duration
}

// DefaultRecorderConfig returns the default recorder configuration.
func DefaultRecorderConfig() *RecorderConfig {
	return &RecorderConfig{
		Buffer:       1000,
		WriteTimeout: 5 * time.Second,
	}
}

// Recorder writes journal records asynchronously so that journaling never
// blocks a submission. Records are assigned a UUID if they arrive without
// one. When the buffer is full the record is dropped and counted; a
// submission is never delayed by the journal.
type Recorder struct {
	storage Storage
	config  *RecorderConfig
	ch      chan *Record
	done    chan struct{}
	wg      sync.WaitGroup
	dropped atomic.Int64
	logger  *slog.Logger

	closeOnce sync.Once
}

// NewRecorder creates and starts an async recorder on top of the given
// storage backend.
func NewRecorder(storage Storage, config *RecorderConfig) *Recorder {
	if config == nil {
		config = DefaultRecorderConfig()
	}
	if config.Buffer <= 0 {
		config.Buffer = 1000
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = 5 * time.Second
	}

	r := &Recorder{
		storage: storage,
		config:  config,
		ch:      make(chan *Record, config.Buffer),
		done:    make(chan struct{}),
		logger:  slog.Default().With("component", "journal.recorder"),
	}

	r.wg.Add(1)
	go r.writeLoop()

	return r
}

// Record enqueues a record for asynchronous persistence. It never blocks;
// when the buffer is full the record is dropped and the drop counter
// incremented.
func (r *Recorder) Record(record *Record) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.SubmittedAt.IsZero() {
		record.SubmittedAt = time.Now()
	}

	select {
	case r.ch <- record:
	default:
		dropped := r.dropped.Add(1)
		r.logger.Warn("journal buffer full, record dropped",
			"doc_id", record.DocID,
			"dropped_total", dropped,
		)
	}
}

// Dropped returns the number of records dropped due to a full buffer.
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

// Close drains pending records and stops the recorder. It does not close
// the underlying storage.
func (r *Recorder) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
		r.wg.Wait()
	})
}

func (r *Recorder) writeLoop() {
	defer r.wg.Done()

	for {
		select {
		case record := <-r.ch:
			r.write(record)
		case <-r.done:
			// Drain whatever is still buffered.
			for {
				select {
				case record := <-r.ch:
					r.write(record)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) write(record *Record) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	if err := r.storage.Store(ctx, record); err != nil {
		r.logger.Error("failed to write journal record",
			"record_id", record.ID,
			"error", err,
		)
	}
}
