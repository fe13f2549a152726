package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"ismp-hq/crptgate/pkg/document"
	"ismp-hq/crptgate/pkg/document/render"
	"ismp-hq/crptgate/pkg/journal"
	"ismp-hq/crptgate/pkg/ratelimit"
	"ismp-hq/crptgate/pkg/telemetry/metrics"
)

// DefaultBaseURL is the production endpoint for document creation.
const DefaultBaseURL = "https://ismp.crpt.ru/api/v3/lk/documents/create"

// Config contains the client configuration.
type Config struct {
	// BaseURL is the document creation endpoint.
	// Defaults to DefaultBaseURL.
	BaseURL string

	// AuthToken is the bearer token sent with every request.
	AuthToken string

	// RequestLimit is the maximum number of submissions per window.
	RequestLimit int

	// Window is the rolling window the request limit applies to.
	Window time.Duration

	// MaxConcurrent caps in-flight submissions. Zero or negative
	// disables the cap.
	MaxConcurrent int

	// Timeout is the per-request HTTP timeout. Defaults to 30s.
	Timeout time.Duration

	// MaxIdleConns configures the connection pool. Defaults to 10.
	MaxIdleConns int

	// MaxIdleConnsPerHost configures the connection pool. Defaults to 10.
	MaxIdleConnsPerHost int

	// IdleConnTimeout configures the connection pool. Defaults to 90s.
	IdleConnTimeout time.Duration
}

// ApplyDefaults fills in default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 10
	}
	if c.MaxIdleConnsPerHost == 0 {
		c.MaxIdleConnsPerHost = 10
	}
	if c.IdleConnTimeout == 0 {
		c.IdleConnTimeout = 90 * time.Second
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.RequestLimit <= 0 {
		return &ConfigError{Field: "request_limit", Message: "must be positive"}
	}
	if c.Window <= 0 {
		return &ConfigError{Field: "window", Message: "must be positive"}
	}
	return nil
}

// SubmitResult describes a successful submission.
type SubmitResult struct {
	// DocumentID is the registry identifier returned by the API
	// (empty if the response carried none).
	DocumentID string

	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Wait is the time spent blocked waiting for rate limiter admission.
	Wait time.Duration

	// Duration is the total call duration including the admission wait.
	Duration time.Duration
}

// createResponse is the success body returned by the create endpoint.
type createResponse struct {
	Value string `json:"value"`
}

// Client submits marking documents to the CRPT API.
//
// Every submission passes through a client-side sliding-window rate
// limiter: callers block until admission rather than receiving a
// rejection, so the client never exceeds its configured request rate.
// The client is safe for concurrent use.
type Client struct {
	config   Config
	http     *http.Client
	limiter  *ratelimit.SlidingWindow
	inflight *ratelimit.ConcurrentLimiter
	recorder *journal.Recorder
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// Option customizes client construction.
type Option func(*Client)

// WithRecorder attaches a journal recorder. Every admitted submission
// is recorded regardless of transport outcome.
func WithRecorder(r *journal.Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithHTTPClient replaces the underlying HTTP client. Intended for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a client from the configuration.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	limiter, err := ratelimit.New(cfg.RequestLimit, cfg.Window)
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	c := &Client{
		config: cfg,
		http: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		limiter:  limiter,
		inflight: ratelimit.NewConcurrentLimiter(cfg.MaxConcurrent),
		logger:   slog.Default().With("component", "client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Limiter returns the client's sliding-window rate limiter.
func (c *Client) Limiter() *ratelimit.SlidingWindow {
	return c.limiter
}

// CreateDocument submits a document for introducing goods into turnover.
//
// The call blocks until the rate limiter admits it; use a context
// deadline to bound the wait. The detached signature is sent in the
// X-Signature header as the API requires. The admission is consumed
// whether or not the HTTP exchange succeeds.
//
// Returns ValidationError for an invalid document, AuthError for 401/403,
// RateLimitError for 429, APIError for other non-2xx responses, and
// TransportError for network failures.
func (c *Client) CreateDocument(ctx context.Context, doc *document.Document, format render.Format, signature string) (*SubmitResult, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	renderer, err := render.ForFormat(format)
	if err != nil {
		return nil, err
	}
	body, err := renderer.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}

	if err := c.acquireSlot(ctx); err != nil {
		return nil, err
	}
	defer c.inflight.Release()

	start := time.Now()
	if err := c.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	wait := time.Since(start)

	if c.metrics != nil {
		c.metrics.ObserveAdmission(wait)
		c.metrics.SetInWindow(c.limiter.InWindow())
	}

	c.logger.Debug("submission admitted",
		"doc_id", doc.DocID,
		"format", string(format),
		"wait", wait,
	)

	result, err := c.submit(ctx, doc, format, body, signature)
	duration := time.Since(start)

	c.record(doc, format, wait, result, err)
	if c.metrics != nil {
		c.metrics.ObserveSubmission(string(format), outcomeLabel(err), duration)
	}

	if err != nil {
		return nil, err
	}
	result.Wait = wait
	result.Duration = duration
	return result, nil
}

// CreateDocumentJSON submits the document rendered as JSON.
func (c *Client) CreateDocumentJSON(ctx context.Context, doc *document.Document, signature string) (*SubmitResult, error) {
	return c.CreateDocument(ctx, doc, render.FormatJSON, signature)
}

// CreateDocumentCSV submits the document rendered as CSV.
func (c *Client) CreateDocumentCSV(ctx context.Context, doc *document.Document, signature string) (*SubmitResult, error) {
	return c.CreateDocument(ctx, doc, render.FormatCSV, signature)
}

// CreateDocumentXML submits the document rendered as XML.
func (c *Client) CreateDocumentXML(ctx context.Context, doc *document.Document, signature string) (*SubmitResult, error) {
	return c.CreateDocument(ctx, doc, render.FormatXML, signature)
}

// acquireSlot waits for an in-flight slot, polling until one frees up
// or the context ends.
func (c *Client) acquireSlot(ctx context.Context) error {
	for {
		if c.inflight.Acquire() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Millisecond):
		}
	}
}

// submit performs the HTTP exchange and classifies the response.
func (c *Client) submit(ctx context.Context, doc *document.Document, format render.Format, body []byte, signature string) (*SubmitResult, error) {
	renderer, _ := render.ForFormat(format)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", renderer.ContentType())
	if signature != "" {
		req.Header.Set("X-Signature", signature)
	}
	if c.config.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.AuthToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &TransportError{Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Cause: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		result := &SubmitResult{StatusCode: resp.StatusCode}
		var created createResponse
		if json.Unmarshal(respBody, &created) == nil {
			result.DocumentID = created.Value
		}
		c.logger.Info("document submitted",
			"doc_id", doc.DocID,
			"registry_id", result.DocumentID,
			"status", resp.StatusCode,
		)
		return result, nil
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &AuthError{StatusCode: resp.StatusCode, Message: string(respBody)}
	case http.StatusTooManyRequests:
		return nil, &RateLimitError{
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Message:    string(respBody),
		}
	default:
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}
}

// record writes the submission to the journal, if one is attached.
func (c *Client) record(doc *document.Document, format render.Format, wait time.Duration, result *SubmitResult, err error) {
	if c.recorder == nil {
		return
	}
	rec := journal.Record{
		DocID:        doc.DocID,
		DocType:      doc.DocType,
		Format:       string(format),
		WaitDuration: wait,
		SubmittedAt:  time.Now(),
	}
	switch e := err.(type) {
	case nil:
		rec.Outcome = journal.OutcomeOK
		rec.StatusCode = result.StatusCode
	case *AuthError:
		rec.Outcome = journal.OutcomeRejected
		rec.StatusCode = e.StatusCode
		rec.Error = e.Error()
	case *RateLimitError:
		rec.Outcome = journal.OutcomeRejected
		rec.StatusCode = http.StatusTooManyRequests
		rec.Error = e.Error()
	case *APIError:
		rec.Outcome = journal.OutcomeRejected
		rec.StatusCode = e.StatusCode
		rec.Error = e.Error()
	default:
		rec.Outcome = journal.OutcomeError
		rec.Error = err.Error()
	}
	c.recorder.Record(&rec)
}

// Close releases the client's connection pool.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// outcomeLabel maps an error to a metrics outcome label.
func outcomeLabel(err error) string {
	switch err.(type) {
	case nil:
		return "ok"
	case *AuthError, *RateLimitError, *APIError:
		return "rejected"
	default:
		return "error"
	}
}

// parseRetryAfter parses the Retry-After header value.
// It supports both delay-seconds and HTTP-date formats.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}

	var seconds int
	if _, err := fmt.Sscanf(header, "%d", &seconds); err == nil {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}

	return 0
}
