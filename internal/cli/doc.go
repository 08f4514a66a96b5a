// Package cli defines tody's command tree.
//
// Running tody with no subcommand starts the TUI. The one-shot commands
// (register, login, todos) log in, run a single operation through a
// todosync.Session, print the resulting list and log out again, so they
// report failures with the same messages the TUI shows. logs prints the
// tail of the log file.
//
// Credentials come from --username/--password, then TODY_USERNAME and
// TODY_PASSWORD (or the config file username), then an interactive
// password prompt when stdin is a terminal.
package cli
