// Package cli is the interactive MindKeeper command-line client.
//
// NewApp wires configuration, the local SQLite cache, the gRPC client and
// the services; App.Run resumes a saved session, starts a background
// connectivity watcher and blocks in the REPL until the user exits.
//
// Commands: register, login, logout, mood, checkin <type>, dashboard, watch,
// journal, entries, breathe <cycles>, sessions, settings, export, help, exit.
//
// When the server is unreachable, dashboard shows the last cached copy and
// says so. Dashboard results go through dashboard.View, so a slow request
// never overwrites a newer one.
package cli
