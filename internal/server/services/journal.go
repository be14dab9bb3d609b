package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/mindkeeper/internal/common"
	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
	"github.com/dmitrijs2005/mindkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mindkeeper/internal/timex"
	"github.com/google/uuid"
)

const maxJournalPage = 100

type JournalService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         timex.Clock
}

func NewJournalService(db *sql.DB, rm repomanager.RepositoryManager) *JournalService {
	return &JournalService{db: db, repomanager: rm, now: time.Now}
}

// Add stores an entry. The body must contain something other than
// whitespace; an empty title is dropped.
func (s *JournalService) Add(ctx context.Context, userID string, title *string, body string) (*models.JournalEntry, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: journal entry is empty", common.ErrorValidation)
	}
	if title != nil {
		t := strings.TrimSpace(*title)
		if t == "" {
			title = nil
		} else {
			title = &t
		}
	}

	e := &models.JournalEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Body:      body,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repomanager.Journal(s.db).Create(ctx, e); err != nil {
		return nil, fmt.Errorf("error saving journal entry: %w", err)
	}
	return e, nil
}

// List returns the newest entries first, at most maxJournalPage of them.
func (s *JournalService) List(ctx context.Context, userID string, limit int) ([]*models.JournalEntry, error) {
	if limit <= 0 || limit > maxJournalPage {
		limit = maxJournalPage
	}
	entries, err := s.repomanager.Journal(s.db).List(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: journal entries: %v", common.ErrFetchFailed, err)
	}
	return entries, nil
}
