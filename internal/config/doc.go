// Package config loads tody's configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/tody/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. TODY_SERVER and TODY_USERNAME override whatever the file says
//
// # Default Values
//
//   - Server: http://127.0.0.1:4000
//   - Log file: ~/.local/state/tody/tody.log
//   - Log level: info
//   - Request timeout: 10s
//   - Typewriter interval: 150ms
//
// # TOML Format
//
//	server = "127.0.0.1:4000"
//	username = "ada"
//	log_file = "~/.local/state/tody/tody.log"
//	log_level = "debug"
//	request_timeout = "5s"
//	typewriter_interval = "120ms"
//	phrases = ["plan the day  ", "then do it  "]
//
// Durations use time.ParseDuration syntax. A malformed file or duration is an
// error; Load never silently ignores invalid TOML.
//
// # Path Expansion
//
// Paths starting with ~ are expanded to the user's home directory and made
// absolute. Blank paths are rejected by expandPath.
//
// The password is never read from the file. One-shot CLI commands take it from
// the --password flag, TODY_PASSWORD (see Password) or an interactive prompt.
package config
