// Package metadata stores the CLI's saved session as key/value pairs in the
// local SQLite cache.
package metadata

import (
	"context"
)

// Key names a saved session value.
type Key string

const (
	KeyUserName     Key = "username"
	KeyAccessToken  Key = "access_token"
	KeyRefreshToken Key = "refresh_token"
)

type Repository interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(ctx context.Context, key Key) (value string, ok bool, err error)
	// SetMany upserts all values in one statement.
	SetMany(ctx context.Context, values map[Key]string) error
	Delete(ctx context.Context, keys ...Key) error
	Clear(ctx context.Context) error
}
