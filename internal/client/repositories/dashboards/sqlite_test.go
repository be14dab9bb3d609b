package dashboards

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/mindkeeper/internal/api"
	"github.com/dmitrijs2005/mindkeeper/internal/common"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE dashboard_cache (
  username  TEXT PRIMARY KEY,
  payload   BLOB NOT NULL,
  cached_at INTEGER NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func sample(mood int) *api.Dashboard {
	score := 14
	return &api.Dashboard{
		Snapshot: api.Snapshot{Mood: mood, Focus: 50, Anxiety: 50, Depression: 50},
		Missing:  []api.MissingDimension{{Dimension: "focus", Label: "Focus"}},
		Phone:    api.PhoneDependence{Enabled: true, Score: &score, Tier: "low"},
		Preferences: api.Preferences{
			Trackers: api.Trackers{Mood: true, PhoneDependence: true},
			Language: "en",
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	at := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	require.NoError(t, r.Save(ctx, "alice", sample(75), at))

	got, err := r.Load(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, at, got.CachedAt)
	require.Equal(t, 75, got.Dashboard.Snapshot.Mood)
	require.Equal(t, "focus", got.Dashboard.Missing[0].Dimension)
	require.NotNil(t, got.Dashboard.Phone.Score)
	require.Equal(t, 14, *got.Dashboard.Phone.Score)
}

func TestSave_ReplacesPreviousRow(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	t0 := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	require.NoError(t, r.Save(ctx, "alice", sample(10), t0))
	require.NoError(t, r.Save(ctx, "alice", sample(90), t0.Add(time.Minute)))

	got, err := r.Load(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, 90, got.Dashboard.Snapshot.Mood)
	require.Equal(t, t0.Add(time.Minute), got.CachedAt)
}

func TestLoad_IsPerUser(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, "alice", sample(10), time.Now()))

	_, err := r.Load(ctx, "bob")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, "alice", sample(10), time.Now()))
	require.NoError(t, r.Delete(ctx, "alice"))
	require.NoError(t, r.Delete(ctx, "alice"))

	_, err := r.Load(ctx, "alice")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestLoad_CorruptPayload(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := db.Exec(`INSERT INTO dashboard_cache (username, payload, cached_at) VALUES ('alice', 'not json', 0)`)
	require.NoError(t, err)

	_, err = r.Load(context.Background(), "alice")
	require.ErrorContains(t, err, "failed to decode dashboard[alice]")
}

func TestErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	require.ErrorContains(t, r.Save(ctx, "alice", sample(1), time.Now()), "failed to save dashboard[alice]")
	_, err := r.Load(ctx, "alice")
	require.ErrorContains(t, err, "failed to load dashboard[alice]")
	require.ErrorContains(t, r.Delete(ctx, "alice"), "failed to delete dashboard[alice]")
}
