package client

import "errors"

var (
	// ErrUnavailable means the server could not be reached. Callers may fall
	// back to cached data.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized means there is no usable session and it
	// could not be refreshed.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRejected wraps a validation failure reported by the server.
	ErrRejected = errors.New("request rejected")
	// ErrLocalDataNotAvailable means the server is offline and nothing is
	// cached for the current user.
	ErrLocalDataNotAvailable = errors.New("no cached data available offline")
)
