// Package client talks to the MindKeeper backend on behalf of the CLI.
//
// Client is the transport-agnostic contract; GRPCClient implements it over
// the JSON-coded gRPC service in internal/api. GRPCClient attaches the access
// token to every call, refreshes it once when the server reports it expired
// and retries, and maps status codes to ErrUnavailable, ErrUnauthorized and
// ErrRejected so callers can use errors.Is.
//
// InitDatabase and RunMigrations bootstrap the local SQLite cache used for
// the saved session and the offline dashboard.
package client
