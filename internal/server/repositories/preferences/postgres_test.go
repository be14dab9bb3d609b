package preferences

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mindkeeper/internal/common"
	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
)

var getColumns = []string{"track_mood", "track_focus", "track_anxiety", "track_depression", "track_phone",
	"language", "font_size", "contrast", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestGet_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)FROM\s+user_preferences\s+WHERE\s+user_id\s*=\s*\$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(getColumns).
			AddRow(true, false, true, false, true, "fr", "huge", "high", time.Now()))

	got, err := repo.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.TrackerFlags{Mood: true, Anxiety: true, PhoneDependence: true}, got.Trackers)
	assert.Equal(t, "fr", got.Language)
	assert.Equal(t, models.FontMedium, got.FontSize, "unknown font tier falls back to medium")
	assert.Equal(t, models.ContrastHigh, got.Contrast)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+user_preferences`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "u1")
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestGet_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+user_preferences`).WillReturnError(errors.New("down"))

	_, err := repo.Get(context.Background(), "u1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrorNotFound))
}

func TestUpsert(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	updated := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+user_preferences.*ON\s+CONFLICT\s*\(user_id\)\s+DO\s+UPDATE.*RETURNING\s+updated_at`).
		WithArgs("u1", true, true, false, true, false, "ja", "large", "extraHigh").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(updated))

	p := &models.UserPreferences{
		UserID:   "u1",
		Trackers: models.TrackerFlags{Mood: true, Focus: true, Depression: true},
		Language: "ja",
		FontSize: models.FontLarge,
		Contrast: models.ContrastExtraHigh,
	}
	require.NoError(t, repo.Upsert(context.Background(), p))
	assert.True(t, p.UpdatedAt.Equal(updated))
}

func TestUpsert_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+user_preferences`).WillReturnError(errors.New("down"))

	err := repo.Upsert(context.Background(), models.DefaultPreferences("u1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}
