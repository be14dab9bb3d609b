// Package refreshtokens declares the storage contract for the opaque refresh
// tokens issued at login.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
)

type Repository interface {
	// Create stores token. Expires must already be set by the caller.
	Create(ctx context.Context, token *models.RefreshToken) error

	// Find returns common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete is a no-op for unknown tokens.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes every token that expired before now and reports
	// how many rows were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
