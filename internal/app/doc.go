// Package app provides the orchestration layer for the Reel application.
//
// # Overview
//
// This package wires together configuration, preferences, logging, the
// catalog client and the UI. It is the composition root where all
// dependencies are initialized and connected.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read ~/.config/reel/config.toml
//	       ├─────> prefs.Load()         Theme and start-up content type
//	       ├─────> logging.Open()       <log_dir>/reel.log
//	       ├─────> catalog.NewClient()  Rate-limited HTTP client with breaker
//	       ├─────> genre.Collation()    Genre order for the configured locale
//	       └─────> ui.Run()             Start TUI (blocks)
//
// There is no background poller. Every request is issued by the browse
// controller in response to a filter change, so the catalog is only hit
// when the user asks for something.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Invalid configuration file or locale
//   - Unknown -type value
//   - Log file cannot be created
//   - Unusable API base URL
//
// Request failures are never fatal. They are logged and shown on the
// failure panel until the next refresh succeeds.
//
// # Configuration
//
// Flags passed through Options take precedence: Kind overrides the saved
// preference and APIBase overrides api_base.
package app
