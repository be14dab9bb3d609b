package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/mindkeeper/internal/common"
	"github.com/dmitrijs2005/mindkeeper/internal/instruments"
	"github.com/dmitrijs2005/mindkeeper/internal/server/changes"
	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
	"github.com/dmitrijs2005/mindkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mindkeeper/internal/timex"
	"github.com/google/uuid"
)

// CheckinService records mood logs and questionnaire results and announces
// each write to dashboard watchers.
type CheckinService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	publisher   changes.Publisher
	now         timex.Clock
}

func NewCheckinService(db *sql.DB, rm repomanager.RepositoryManager, publisher changes.Publisher) *CheckinService {
	return &CheckinService{db: db, repomanager: rm, publisher: publisher, now: time.Now}
}

// LogMood stores a mood check-in. Only the five known categories are
// accepted; a blank note is stored as no note.
func (s *CheckinService) LogMood(ctx context.Context, userID string, mood models.MoodCategory, note *string) (*models.MoodLog, error) {
	if !mood.Valid() {
		return nil, fmt.Errorf("%w: unknown mood %q", common.ErrorValidation, mood)
	}
	if note != nil && strings.TrimSpace(*note) == "" {
		note = nil
	}

	log := &models.MoodLog{
		ID:        uuid.NewString(),
		UserID:    userID,
		Mood:      mood,
		Note:      note,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repomanager.Moods(s.db).Create(ctx, log); err != nil {
		return nil, fmt.Errorf("error saving mood log: %w", err)
	}

	s.publisher.Publish(changes.Event{UserID: userID, Table: changes.TableMoodLogs})
	return log, nil
}

// SubmitQuestionnaire scores answers against the instrument definition and
// stores the result. The client never supplies the total.
func (s *CheckinService) SubmitQuestionnaire(ctx context.Context, userID string, t models.InstrumentType, answers map[string]int) (*models.QuestionnaireResult, error) {
	in, err := instruments.Lookup(t)
	if err != nil {
		return nil, err
	}
	score, err := in.Score(answers)
	if err != nil {
		return nil, err
	}

	result := &models.QuestionnaireResult{
		ID:         uuid.NewString(),
		UserID:     userID,
		Instrument: in.Type,
		Score:      score,
		Answers:    answers,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repomanager.Questionnaires(s.db).Create(ctx, result); err != nil {
		return nil, fmt.Errorf("error saving questionnaire result: %w", err)
	}

	s.publisher.Publish(changes.Event{UserID: userID, Table: changes.TableQuestionnaireResults})
	return result, nil
}
