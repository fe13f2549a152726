// Package journal records an audit trail of document submissions.
//
// Every submission the client performs — successful or not — produces one
// Record: which document, which wire format, how long the caller waited for
// rate-limit admission, and how the API responded. Records are written
// asynchronously through a Recorder so journaling never blocks a submission.
//
// Two storage backends are provided: an in-memory store for tests and a
// SQLite store for durable audit trails. Retention is handled by the
// retention subpackage.
package journal
