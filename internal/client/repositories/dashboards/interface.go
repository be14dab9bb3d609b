package dashboards

import (
	"context"
	"time"

	"github.com/dmitrijs2005/mindkeeper/internal/api"
)

// Cached is a stored dashboard and the moment it was saved.
type Cached struct {
	Dashboard api.Dashboard
	CachedAt  time.Time
}

type Repository interface {
	Save(ctx context.Context, userName string, d *api.Dashboard, at time.Time) error
	Load(ctx context.Context, userName string) (*Cached, error)
	Delete(ctx context.Context, userName string) error
}
