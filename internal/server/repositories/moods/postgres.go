package moods

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mindkeeper/internal/dbx"
	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, log *models.MoodLog) error {
	query := `
		INSERT INTO mood_logs (id, user_id, mood, note, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query, log.ID, log.UserID, string(log.Mood), log.Note, log.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func scanMoodLog(rows *sql.Rows) (*models.MoodLog, error) {
	var (
		log  models.MoodLog
		mood string
		note sql.NullString
	)
	if err := rows.Scan(&log.ID, &log.UserID, &mood, &note, &log.CreatedAt); err != nil {
		return nil, err
	}
	// stored values are kept as-is; unknown categories score neutral later
	log.Mood = models.MoodCategory(mood)
	if note.Valid {
		log.Note = &note.String
	}
	return &log, nil
}

func (r *PostgresRepository) SelectSince(ctx context.Context, userID string, since time.Time) ([]*models.MoodLog, error) {
	query := `
		SELECT id, user_id, mood, note, created_at
		FROM mood_logs
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at DESC
	`
	logs, err := dbx.QueryAll(ctx, r.db, scanMoodLog, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return logs, nil
}

func (r *PostgresRepository) ExistsSince(ctx context.Context, userID string, since time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM mood_logs
			WHERE user_id = $1 AND created_at >= $2
		)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, since).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}
