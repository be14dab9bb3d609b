package preferences

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mindkeeper/internal/common"
	"github.com/dmitrijs2005/mindkeeper/internal/dbx"
	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.UserPreferences, error) {
	query := `
		SELECT track_mood, track_focus, track_anxiety, track_depression, track_phone,
		       language, font_size, contrast, updated_at
		FROM user_preferences
		WHERE user_id = $1
	`
	p := &models.UserPreferences{UserID: userID}
	var font, contrast string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.Trackers.Mood, &p.Trackers.Focus, &p.Trackers.Anxiety, &p.Trackers.Depression, &p.Trackers.PhoneDependence,
		&p.Language, &font, &contrast, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	p.FontSize = models.FontSize(font)
	p.Contrast = models.ContrastMode(contrast)
	p.Normalize()
	return p, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, p *models.UserPreferences) error {
	query := `
		INSERT INTO user_preferences (user_id, track_mood, track_focus, track_anxiety, track_depression, track_phone,
		                              language, font_size, contrast, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		ON CONFLICT (user_id) DO UPDATE SET
			track_mood = EXCLUDED.track_mood,
			track_focus = EXCLUDED.track_focus,
			track_anxiety = EXCLUDED.track_anxiety,
			track_depression = EXCLUDED.track_depression,
			track_phone = EXCLUDED.track_phone,
			language = EXCLUDED.language,
			font_size = EXCLUDED.font_size,
			contrast = EXCLUDED.contrast,
			updated_at = EXCLUDED.updated_at
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		p.UserID, p.Trackers.Mood, p.Trackers.Focus, p.Trackers.Anxiety, p.Trackers.Depression, p.Trackers.PhoneDependence,
		p.Language, string(p.FontSize), string(p.Contrast),
	).Scan(&p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
