// Package retention enforces retention policy on the submission journal.
//
// A Pruner deletes records older than the configured retention period and,
// optionally, trims the journal down to a maximum record count. A Scheduler
// runs the pruner on a cron expression, typically nightly.
package retention
