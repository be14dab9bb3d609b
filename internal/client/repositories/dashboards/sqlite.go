package dashboards

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mindkeeper/internal/api"
	"github.com/dmitrijs2005/mindkeeper/internal/common"
	"github.com/dmitrijs2005/mindkeeper/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, userName string, d *api.Dashboard, at time.Time) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode dashboard: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO dashboard_cache (username, payload, cached_at) VALUES (?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET payload = excluded.payload, cached_at = excluded.cached_at
	`, userName, payload, at.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save dashboard[%s]: %w", userName, err)
	}
	return nil
}

func (r *SQLiteRepository) Load(ctx context.Context, userName string) (*Cached, error) {
	var (
		payload  []byte
		cachedAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT payload, cached_at FROM dashboard_cache WHERE username = ?`, userName,
	).Scan(&payload, &cachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard[%s]: %w", userName, err)
	}

	c := &Cached{CachedAt: time.UnixMilli(cachedAt).UTC()}
	if err := json.Unmarshal(payload, &c.Dashboard); err != nil {
		return nil, fmt.Errorf("failed to decode dashboard[%s]: %w", userName, err)
	}
	return c, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, userName string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM dashboard_cache WHERE username = ?`, userName); err != nil {
		return fmt.Errorf("failed to delete dashboard[%s]: %w", userName, err)
	}
	return nil
}
