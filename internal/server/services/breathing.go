package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mindkeeper/internal/common"
	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
	"github.com/dmitrijs2005/mindkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mindkeeper/internal/timex"
	"github.com/google/uuid"
)

// maxBreathingCycles bounds one session at a little over an hour.
const maxBreathingCycles = 300

type BreathingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         timex.Clock
}

func NewBreathingService(db *sql.DB, rm repomanager.RepositoryManager) *BreathingService {
	return &BreathingService{db: db, repomanager: rm, now: time.Now}
}

// Pattern returns the guided cycle clients should play.
func (s *BreathingService) Pattern() []models.BreathingPhase {
	return models.BreathingPattern
}

// Record stores a session of completed cycles. The duration is derived from
// the pattern, not trusted from the client.
func (s *BreathingService) Record(ctx context.Context, userID string, cycles int) (*models.BreathingSession, error) {
	if cycles < 1 || cycles > maxBreathingCycles {
		return nil, fmt.Errorf("%w: cycles must be between 1 and %d", common.ErrorValidation, maxBreathingCycles)
	}

	session := &models.BreathingSession{
		ID:              uuid.NewString(),
		UserID:          userID,
		Cycles:          cycles,
		DurationSeconds: int((time.Duration(cycles) * models.CycleDuration()).Seconds()),
		CreatedAt:       s.now().UTC(),
	}
	if err := s.repomanager.Breathing(s.db).Create(ctx, session); err != nil {
		return nil, fmt.Errorf("error saving breathing session: %w", err)
	}
	return session, nil
}

func (s *BreathingService) Recent(ctx context.Context, userID string, limit int) ([]*models.BreathingSession, error) {
	sessions, err := s.repomanager.Breathing(s.db).List(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: breathing sessions: %v", common.ErrFetchFailed, err)
	}
	return sessions, nil
}
