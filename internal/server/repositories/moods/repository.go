// Package moods stores mood check-ins.
package moods

import (
	"context"
	"time"

	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, log *models.MoodLog) error
	// SelectSince returns the user's logs created at or after since, newest
	// first. No rows is an empty result, not an error.
	SelectSince(ctx context.Context, userID string, since time.Time) ([]*models.MoodLog, error)
	ExistsSince(ctx context.Context, userID string, since time.Time) (bool, error)
}
