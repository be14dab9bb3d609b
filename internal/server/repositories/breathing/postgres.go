package breathing

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/mindkeeper/internal/dbx"
	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.BreathingSession) error {
	query := `
		INSERT INTO breathing_sessions (id, user_id, cycles, duration_seconds, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query, s.ID, s.UserID, s.Cycles, s.DurationSeconds, s.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, limit int) ([]*models.BreathingSession, error) {
	query := `
		SELECT id, user_id, cycles, duration_seconds, created_at
		FROM breathing_sessions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	sessions, err := dbx.QueryAll(ctx, r.db, func(rows *sql.Rows) (*models.BreathingSession, error) {
		var s models.BreathingSession
		err := rows.Scan(&s.ID, &s.UserID, &s.Cycles, &s.DurationSeconds, &s.CreatedAt)
		return &s, err
	}, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return sessions, nil
}
