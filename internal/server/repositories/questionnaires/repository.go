// Package questionnaires stores completed instrument results.
package questionnaires

import (
	"context"
	"time"

	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, result *models.QuestionnaireResult) error

	// Latest returns the newest result of the given type. A nil since means
	// no lower bound. common.ErrorNotFound is returned when nothing matches.
	Latest(ctx context.Context, userID string, instrument models.InstrumentType, since *time.Time) (*models.QuestionnaireResult, error)

	ExistsSince(ctx context.Context, userID string, instrument models.InstrumentType, since time.Time) (bool, error)

	// SelectSince returns results of every type, newest first.
	SelectSince(ctx context.Context, userID string, since time.Time) ([]*models.QuestionnaireResult, error)
}
