// Package breathing stores completed guided breathing sessions.
package breathing

import (
	"context"

	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.BreathingSession) error
	// List returns newest sessions first; a non-positive limit returns all.
	List(ctx context.Context, userID string, limit int) ([]*models.BreathingSession, error)
}
