// Package preferences stores the single per-user settings row.
package preferences

import (
	"context"

	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
)

type Repository interface {
	// Get returns common.ErrorNotFound when the user never saved settings.
	Get(ctx context.Context, userID string) (*models.UserPreferences, error)
	// Upsert inserts or replaces the user's row and fills UpdatedAt.
	Upsert(ctx context.Context, prefs *models.UserPreferences) error
}
