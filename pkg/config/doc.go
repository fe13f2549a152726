// Package config loads and validates the crptgate configuration.
//
// Configuration is read from a YAML file, filled in with defaults, and
// overridden by environment variables of the form CRPTGATE_SECTION_FIELD
// (e.g. CRPTGATE_API_AUTH_TOKEN). A FileWatcher supports hot reloads for
// long-running processes.
//
// Example configuration file:
//
//	api:
//	  auth_token: "..."
//	  timeout: 30s
//	rate_limit:
//	  limit: 10
//	  window: 1s
//	journal:
//	  enabled: true
//	  backend: sqlite
//	  sqlite:
//	    path: data/journal.db
//	telemetry:
//	  logging:
//	    level: info
//	    format: json
package config
