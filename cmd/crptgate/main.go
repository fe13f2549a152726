// Crptgate is a rate-limited submission gateway for the CRPT (Chestny
// ZNAK) marking API.
//
// It submits goods-commissioning documents over HTTP while enforcing a
// client-side sliding-window request limit, providing:
//   - Blocking rate-limit admission (never rejects, waits its turn)
//   - JSON, CSV, and XML document rendering
//   - A persistent journal of submission outcomes
//   - An offline spool with a background submission worker
//
// Usage:
//
//	# Submit a document immediately
//	crptgate submit --file doc.json --signature-file doc.sig
//
//	# Queue a document for the background worker
//	crptgate enqueue --file doc.json --signature-file doc.sig
//
//	# Run the spool worker and metrics endpoint
//	crptgate run --config /etc/crptgate/config.yaml
//
//	# Inspect the submission journal
//	crptgate journal --outcome rejected --limit 20
//
//	# Validate configuration and documents
//	crptgate validate --file doc.json
package main

func main() {
	Execute()
}
