package spool

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"ismp-hq/crptgate/pkg/document"
)

// Item is one queued submission.
type Item struct {
	// ID is the queue position, assigned by the database.
	ID int64

	// Document is the decoded document to submit.
	Document *document.Document

	// Format is the wire format to submit in ("json", "csv", "xml").
	Format string

	// Signature is the detached signature to send in X-Signature.
	Signature string

	// Attempts is how many submission attempts have been made.
	Attempts int

	// LastError is the error text of the most recent failed attempt.
	LastError string

	// EnqueuedAt is when the item entered the spool.
	EnqueuedAt time.Time
}

// Config configures the spool.
type Config struct {
	// Path is the SQLite database file path.
	Path string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration

	// MaxAttempts marks items failed after this many attempts.
	// Default: 5. Zero or less keeps retrying forever.
	MaxAttempts int
}

// Spool is a SQLite-backed submission outbox.
type Spool struct {
	db     *sql.DB
	config Config
}

const spoolSchema = `
CREATE TABLE IF NOT EXISTS spool_items (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	document     TEXT NOT NULL,
	format       TEXT NOT NULL,
	signature    TEXT NOT NULL,
	state        TEXT NOT NULL DEFAULT 'pending',
	attempts     INTEGER NOT NULL DEFAULT 0,
	last_error   TEXT,
	enqueued_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_spool_items_state ON spool_items(state, id);
`

// Open opens (creating if necessary) a spool database at the given path.
func Open(config Config) (*Spool, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("spool path cannot be empty")
	}
	if config.BusyTimeout <= 0 {
		config.BusyTimeout = 5 * time.Second
	}
	if config.MaxAttempts == 0 {
		config.MaxAttempts = 5
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		config.Path, config.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open spool database: %w", err)
	}

	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(spoolSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize spool schema: %w", err)
	}

	return &Spool{db: db, config: config}, nil
}

// Enqueue adds a document to the spool and returns its queue ID.
func (s *Spool) Enqueue(ctx context.Context, doc *document.Document, format, signature string) (int64, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("failed to encode document: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO spool_items (document, format, signature, enqueued_at)
		 VALUES (?, ?, ?, ?)`,
		string(payload), format, signature, time.Now().UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to enqueue document: %w", err)
	}
	return res.LastInsertId()
}

// Next returns the oldest pending item, or nil when the spool is empty.
func (s *Spool) Next(ctx context.Context) (*Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, document, format, signature, attempts, COALESCE(last_error, ''), enqueued_at
		 FROM spool_items WHERE state = 'pending' ORDER BY id LIMIT 1`)

	var (
		item       Item
		payload    string
		enqueuedNS int64
	)
	err := row.Scan(&item.ID, &payload, &item.Format, &item.Signature,
		&item.Attempts, &item.LastError, &enqueuedNS)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read spool: %w", err)
	}

	item.EnqueuedAt = time.Unix(0, enqueuedNS)
	item.Document = &document.Document{}
	if err := json.Unmarshal([]byte(payload), item.Document); err != nil {
		return nil, fmt.Errorf("corrupt spool item %d: %w", item.ID, err)
	}

	return &item, nil
}

// Complete removes a successfully submitted item from the spool.
func (s *Spool) Complete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM spool_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to complete spool item %d: %w", id, err)
	}
	return nil
}

// Fail records a failed attempt. The item stays pending until MaxAttempts
// is reached, after which it is marked failed and no longer returned by
// Next.
func (s *Spool) Fail(ctx context.Context, id int64, cause error) error {
	errText := ""
	if cause != nil {
		errText = cause.Error()
	}

	state := "pending"
	if s.config.MaxAttempts > 0 {
		var attempts int
		row := s.db.QueryRowContext(ctx, "SELECT attempts FROM spool_items WHERE id = ?", id)
		if err := row.Scan(&attempts); err != nil {
			return fmt.Errorf("failed to read spool item %d: %w", id, err)
		}
		if attempts+1 >= s.config.MaxAttempts {
			state = "failed"
		}
	}

	_, err := s.db.ExecContext(ctx,
		`UPDATE spool_items SET attempts = attempts + 1, last_error = ?, state = ? WHERE id = ?`,
		errText, state, id)
	if err != nil {
		return fmt.Errorf("failed to update spool item %d: %w", id, err)
	}
	return nil
}

// Pending returns the number of items waiting for submission.
func (s *Spool) Pending(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM spool_items WHERE state = 'pending'").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count spool: %w", err)
	}
	return count, nil
}

// Close closes the spool database.
func (s *Spool) Close() error {
	return s.db.Close()
}
