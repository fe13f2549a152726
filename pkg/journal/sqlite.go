package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteConfig contains configuration for the SQLite journal backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables write-ahead logging for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is how long to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite journal configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/journal.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
}

const journalSchema = `
CREATE TABLE IF NOT EXISTS submissions (
	id            TEXT PRIMARY KEY,
	doc_id        TEXT NOT NULL,
	doc_type      TEXT NOT NULL,
	format        TEXT NOT NULL,
	outcome       TEXT NOT NULL,
	status_code   INTEGER NOT NULL,
	error         TEXT,
	wait_ns       INTEGER NOT NULL,
	submitted_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_submissions_submitted_at ON submissions(submitted_at);
CREATE INDEX IF NOT EXISTS idx_submissions_outcome ON submissions(outcome);
`

// NewSQLiteStorage creates a SQLite journal backend, initializing the schema
// and enabling WAL mode if configured.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.Path == "" {
		return nil, NewStorageError("sqlite", "open", fmt.Errorf("path cannot be empty"))
	}

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStorage{db: db, config: config}

	if config.WALMode {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, NewStorageError("sqlite", "pragma", err)
		}
	}
	if config.BusyTimeout > 0 {
		pragma := fmt.Sprintf("PRAGMA busy_timeout=%d", config.BusyTimeout.Milliseconds())
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, NewStorageError("sqlite", "pragma", err)
		}
	}

	if _, err := db.Exec(journalSchema); err != nil {
		db.Close()
		return nil, NewStorageError("sqlite", "init_schema", err)
	}

	return s, nil
}

// Store implements Storage.
func (s *SQLiteStorage) Store(ctx context.Context, record *Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO submissions
		 (id, doc_id, doc_type, format, outcome, status_code, error, wait_ns, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.DocID,
		record.DocType,
		record.Format,
		string(record.Outcome),
		record.StatusCode,
		record.Error,
		record.WaitDuration.Nanoseconds(),
		record.SubmittedAt.UnixNano(),
	)
	if err != nil {
		return NewStorageError("sqlite", "store", err)
	}
	return nil
}

// List implements Storage. Results are newest first.
func (s *SQLiteStorage) List(ctx context.Context, query *Query) ([]*Record, error) {
	if query == nil {
		query = &Query{}
	}

	var (
		conds []string
		args  []any
	)
	if query.Outcome != "" {
		conds = append(conds, "outcome = ?")
		args = append(args, string(query.Outcome))
	}
	if !query.Since.IsZero() {
		conds = append(conds, "submitted_at >= ?")
		args = append(args, query.Since.UnixNano())
	}

	q := "SELECT id, doc_id, doc_type, format, outcome, status_code, error, wait_ns, submitted_at FROM submissions"
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY submitted_at DESC"
	if query.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, query.Limit)
		if query.Offset > 0 {
			q += " OFFSET ?"
			args = append(args, query.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var (
			r           Record
			outcome     string
			errText     sql.NullString
			waitNS      int64
			submittedNS int64
		)
		if err := rows.Scan(&r.ID, &r.DocID, &r.DocType, &r.Format, &outcome,
			&r.StatusCode, &errText, &waitNS, &submittedNS); err != nil {
			return nil, NewStorageError("sqlite", "scan", err)
		}
		r.Outcome = Outcome(outcome)
		r.Error = errText.String
		r.WaitDuration = time.Duration(waitNS)
		r.SubmittedAt = time.Unix(0, submittedNS)
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}

	return records, nil
}

// Count implements Storage.
func (s *SQLiteStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM submissions").Scan(&count)
	if err != nil {
		return 0, NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// DeleteBefore implements Storage.
func (s *SQLiteStorage) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM submissions WHERE submitted_at < ?", cutoff.UnixNano())
	if err != nil {
		return 0, NewStorageError("sqlite", "delete", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, NewStorageError("sqlite", "delete", err)
	}
	return deleted, nil
}

// Close implements Storage.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
