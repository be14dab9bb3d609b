package journal

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

func (r *PostgresRepository) Create(ctx context.Context, e *models.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (id, user_id, title, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query, e.ID, e.UserID, e.Title, e.Body, e.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func scanEntry(rows *sql.Rows) (*models.JournalEntry, error) {
	var (
		e     models.JournalEntry
		title sql.NullString
	)
	if err := rows.Scan(&e.ID, &e.UserID, &title, &e.Body, &e.CreatedAt); err != nil {
		return nil, err
	}
	if title.Valid {
		e.Title = &title.String
	}
	return &e, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, limit int) ([]*models.JournalEntry, error) {
	query := `
		SELECT id, user_id, title, body, created_at
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	entries, err := dbx.QueryAll(ctx, r.db, scanEntry, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entries, nil
}
