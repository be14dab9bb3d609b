package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/mindkeeper/internal/common"
	"github.com/dmitrijs2005/mindkeeper/internal/server/changes"
	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
	"github.com/dmitrijs2005/mindkeeper/internal/server/repositories/repomanager"
	lru "github.com/hashicorp/golang-lru/v2"
)

// PreferencesService reads and writes the per-user settings row. Reads are
// served from an LRU cache keyed by user; a write evicts the entry.
type PreferencesService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	publisher   changes.Publisher
	cache       *lru.Cache[string, models.UserPreferences]
}

func NewPreferencesService(db *sql.DB, rm repomanager.RepositoryManager, publisher changes.Publisher, cacheSize int) (*PreferencesService, error) {
	cache, err := lru.New[string, models.UserPreferences](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("preferences cache: %w", err)
	}
	return &PreferencesService{db: db, repomanager: rm, publisher: publisher, cache: cache}, nil
}

// Get returns the stored preferences, or the all-enabled defaults when the
// user never saved any. Store failures are wrapped in ErrFetchFailed.
func (s *PreferencesService) Get(ctx context.Context, userID string) (*models.UserPreferences, error) {
	if p, ok := s.cache.Get(userID); ok {
		return &p, nil
	}

	p, err := s.repomanager.Preferences(s.db).Get(ctx, userID)
	if errors.Is(err, common.ErrorNotFound) {
		p = models.DefaultPreferences(userID)
	} else if err != nil {
		return nil, fmt.Errorf("%w: preferences: %v", common.ErrFetchFailed, err)
	}

	s.cache.Add(userID, *p)
	return p, nil
}

// Update validates and upserts p.
func (s *PreferencesService) Update(ctx context.Context, p *models.UserPreferences) (*models.UserPreferences, error) {
	if err := validatePreferences(p); err != nil {
		return nil, err
	}

	if err := s.repomanager.Preferences(s.db).Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("error saving preferences: %w", err)
	}
	s.cache.Remove(p.UserID)
	s.publisher.Publish(changes.Event{UserID: p.UserID, Table: changes.TableUserPreferences})
	return p, nil
}

func validatePreferences(p *models.UserPreferences) error {
	if p.UserID == "" {
		return fmt.Errorf("%w: user is required", common.ErrorValidation)
	}
	if !slices.Contains(models.SupportedLanguages, p.Language) {
		return fmt.Errorf("%w: unsupported language %q", common.ErrorValidation, p.Language)
	}
	switch p.FontSize {
	case models.FontSmall, models.FontMedium, models.FontLarge, models.FontExtraLarge:
	default:
		return fmt.Errorf("%w: unsupported font size %q", common.ErrorValidation, p.FontSize)
	}
	switch p.Contrast {
	case models.ContrastNormal, models.ContrastHigh, models.ContrastExtraHigh:
	default:
		return fmt.Errorf("%w: unsupported contrast mode %q", common.ErrorValidation, p.Contrast)
	}
	return nil
}
