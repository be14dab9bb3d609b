package questionnaires

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

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

func (r *PostgresRepository) Create(ctx context.Context, result *models.QuestionnaireResult) error {
	answers, err := json.Marshal(result.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}

	query := `
		INSERT INTO questionnaire_results (id, user_id, type, score, answers, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.db.ExecContext(ctx, query,
		result.ID, result.UserID, string(result.Instrument), result.Score, string(answers), result.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(s scanner) (*models.QuestionnaireResult, error) {
	var (
		res        models.QuestionnaireResult
		instrument string
		answers    []byte
	)
	if err := s.Scan(&res.ID, &res.UserID, &instrument, &res.Score, &answers, &res.CreatedAt); err != nil {
		return nil, err
	}
	res.Instrument = models.InstrumentType(instrument)
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &res.Answers); err != nil {
			return nil, fmt.Errorf("decode answers: %w", err)
		}
	}
	return &res, nil
}

func (r *PostgresRepository) Latest(ctx context.Context, userID string, instrument models.InstrumentType, since *time.Time) (*models.QuestionnaireResult, error) {
	query := `
		SELECT id, user_id, type, score, answers, created_at
		FROM questionnaire_results
		WHERE user_id = $1 AND type = $2 AND ($3::timestamptz IS NULL OR created_at >= $3)
		ORDER BY created_at DESC
		LIMIT 1
	`
	var bound any
	if since != nil {
		bound = *since
	}

	res, err := scanResult(r.db.QueryRowContext(ctx, query, userID, string(instrument), bound))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return res, nil
}

func (r *PostgresRepository) ExistsSince(ctx context.Context, userID string, instrument models.InstrumentType, since time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM questionnaire_results
			WHERE user_id = $1 AND type = $2 AND created_at >= $3
		)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, string(instrument), since).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) SelectSince(ctx context.Context, userID string, since time.Time) ([]*models.QuestionnaireResult, error) {
	query := `
		SELECT id, user_id, type, score, answers, created_at
		FROM questionnaire_results
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at DESC
	`
	results, err := dbx.QueryAll(ctx, r.db, func(rows *sql.Rows) (*models.QuestionnaireResult, error) {
		return scanResult(rows)
	}, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return results, nil
}
