// Package app is tody's composition root.
//
// Setup turns a config path into a ready Env:
//
//	config.Load()        read config.toml and TODY_* overrides
//	logs.New()           slog fan-out to the log file (and stderr with --verbose)
//	todoapi.NewClient()  HTTP client with a cookie jar for the session
//	todosync.New()       the session every front end drives
//
// Run adds the pieces only the TUI needs (prefs, the scratch pad) and blocks
// in ui.Run until the user quits. One-shot CLI commands call Setup directly.
//
// Errors from config, logger or client construction are fatal and returned.
// A broken prefs file is logged and replaced by defaults.
package app
