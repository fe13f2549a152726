// Package spool is a durable outbox for document submissions.
//
// Documents enqueued into the spool survive process restarts; the crptgate
// run command drains them through the submission client, so queued documents
// respect the same shared rate limiter as one-shot submissions.
//
// The spool is backed by SQLite through the pure-Go modernc.org/sqlite
// driver, so the binary builds without cgo even when the journal's backend
// is disabled.
package spool
