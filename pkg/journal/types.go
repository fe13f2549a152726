package journal

import (
	"context"
	"time"
)

// Outcome classifies how a submission ended.
type Outcome string

const (
	// OutcomeOK means the API accepted the document (2xx).
	OutcomeOK Outcome = "ok"
	// OutcomeRejected means the API refused the document (4xx/5xx).
	OutcomeRejected Outcome = "rejected"
	// OutcomeError means the submission failed before or during transport.
	OutcomeError Outcome = "error"
)

// Record is one journaled submission.
type Record struct {
	// ID is a UUID assigned by the recorder.
	ID string `json:"id"`

	// DocID is the submitted document's identifier.
	DocID string `json:"doc_id"`

	// DocType is the submitted document's type.
	DocType string `json:"doc_type"`

	// Format is the wire format used ("json", "csv", "xml").
	Format string `json:"format"`

	// Outcome classifies the result.
	Outcome Outcome `json:"outcome"`

	// StatusCode is the HTTP status returned by the API (0 if the request
	// never completed).
	StatusCode int `json:"status_code"`

	// Error holds the error text for non-OK outcomes.
	Error string `json:"error,omitempty"`

	// WaitDuration is how long the caller blocked in rate-limit admission.
	WaitDuration time.Duration `json:"wait_duration"`

	// SubmittedAt is when the request was sent (after admission).
	SubmittedAt time.Time `json:"submitted_at"`
}

// Query filters and paginates journal listings.
type Query struct {
	// Outcome filters by outcome when non-empty.
	Outcome Outcome

	// Since restricts results to records submitted at or after this time.
	Since time.Time

	// Limit caps the number of returned records. 0 means no cap.
	Limit int

	// Offset skips the first N matching records.
	Offset int
}

// Storage persists journal records. Implementations must be safe for
// concurrent use.
type Storage interface {
	// Store persists one record.
	Store(ctx context.Context, record *Record) error

	// List returns records matching the query, newest first.
	List(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the total number of stored records.
	Count(ctx context.Context) (int64, error)

	// DeleteBefore removes records submitted before the cutoff and
	// returns how many were deleted.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Close releases backend resources.
	Close() error
}
