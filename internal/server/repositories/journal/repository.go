// Package journal stores free-text journal entries.
package journal

import (
	"context"

	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, entry *models.JournalEntry) error
	// List returns the user's newest entries first. A non-positive limit
	// returns everything.
	List(ctx context.Context, userID string, limit int) ([]*models.JournalEntry, error)
}
