// Package config loads reel's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/reel/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/reel/config.toml
//   - API base: http://127.0.0.1:8000
//   - Locale: fr (genre list collation)
//   - Log directory: ~/.local/share/reel/logs
//   - Log file: <log_dir>/reel.log
//   - Outbound requests per second: 10
//
// # TOML Format
//
//	api_base = "http://127.0.0.1:8000"
//	locale = "fr"
//	log_dir = "~/.local/share/reel/logs"
//	requests_per_second = 10
//
// Every field is optional. A bare host:port api_base gets an http:// scheme
// when the client is built. Tilde expansion is performed on log_dir.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors and malformed locale tags ("parse config: ...")
//
// Missing config files are NOT an error. reel works against a local
// backend without any configuration.
package config
