package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/mindkeeper/internal/common"
	"github.com/dmitrijs2005/mindkeeper/internal/dbx"
	"github.com/dmitrijs2005/mindkeeper/internal/server/changes"
	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
	"github.com/dmitrijs2005/mindkeeper/internal/server/repositories/breathing"
	"github.com/dmitrijs2005/mindkeeper/internal/server/repositories/journal"
	"github.com/dmitrijs2005/mindkeeper/internal/server/repositories/moods"
	"github.com/dmitrijs2005/mindkeeper/internal/server/repositories/preferences"
	"github.com/dmitrijs2005/mindkeeper/internal/server/repositories/questionnaires"
	"github.com/dmitrijs2005/mindkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/mindkeeper/internal/server/repositories/users"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func daysAgo(d float64) time.Time {
	return testNow.Add(-time.Duration(d * float64(24*time.Hour)))
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// --- users / refresh tokens ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error

	created *models.User
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.created = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = "new-id"
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	delErr    error
	createErr error

	created []*models.RefreshToken
	deleted []string
	purged  time.Time
}

func (f *fakeRefreshRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, token)
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	return f.delErr
}

func (f *fakeRefreshRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	f.purged = now
	return 2, nil
}

// --- wellness records ---

type fakeMoodsRepo struct {
	mu        sync.Mutex
	logs      []*models.MoodLog
	selectErr error
	existsErr error
	createErr error
}

func (f *fakeMoodsRepo) Create(ctx context.Context, log *models.MoodLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeMoodsRepo) SelectSince(ctx context.Context, userID string, since time.Time) ([]*models.MoodLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	var out []*models.MoodLog
	for _, l := range f.logs {
		if l.UserID == userID && !l.CreatedAt.Before(since) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeMoodsRepo) ExistsSince(ctx context.Context, userID string, since time.Time) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	logs, _ := f.SelectSince(ctx, userID, since)
	return len(logs) > 0, nil
}

type fakeQuestionnairesRepo struct {
	mu        sync.Mutex
	results   []*models.QuestionnaireResult
	latestErr error
	existsErr error
	createErr error
	selectErr error
}

func (f *fakeQuestionnairesRepo) Create(ctx context.Context, r *models.QuestionnaireResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.results = append(f.results, r)
	return nil
}

func (f *fakeQuestionnairesRepo) matching(userID string, t models.InstrumentType, since *time.Time) []*models.QuestionnaireResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.QuestionnaireResult
	for _, r := range f.results {
		if r.UserID != userID || (t != "" && r.Instrument != t) {
			continue
		}
		if since != nil && r.CreatedAt.Before(*since) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeQuestionnairesRepo) Latest(ctx context.Context, userID string, t models.InstrumentType, since *time.Time) (*models.QuestionnaireResult, error) {
	if f.latestErr != nil {
		return nil, f.latestErr
	}
	m := f.matching(userID, t, since)
	if len(m) == 0 {
		return nil, common.ErrorNotFound
	}
	return m[0], nil
}

func (f *fakeQuestionnairesRepo) ExistsSince(ctx context.Context, userID string, t models.InstrumentType, since time.Time) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return len(f.matching(userID, t, &since)) > 0, nil
}

func (f *fakeQuestionnairesRepo) SelectSince(ctx context.Context, userID string, since time.Time) ([]*models.QuestionnaireResult, error) {
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	return f.matching(userID, "", &since), nil
}

type fakePreferencesRepo struct {
	mu        sync.Mutex
	rows      map[string]models.UserPreferences
	getErr    error
	upsertErr error
	gets      int
}

func (f *fakePreferencesRepo) Get(ctx context.Context, userID string) (*models.UserPreferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.rows[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (f *fakePreferencesRepo) Upsert(ctx context.Context, p *models.UserPreferences) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if f.rows == nil {
		f.rows = map[string]models.UserPreferences{}
	}
	p.UpdatedAt = testNow
	f.rows[p.UserID] = *p
	return nil
}

type fakeJournalRepo struct {
	entries   []*models.JournalEntry
	err       error
	lastLimit int
}

func (f *fakeJournalRepo) Create(ctx context.Context, e *models.JournalEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeJournalRepo) List(ctx context.Context, userID string, limit int) ([]*models.JournalEntry, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

type fakeBreathingRepo struct {
	sessions []*models.BreathingSession
	err      error
}

func (f *fakeBreathingRepo) Create(ctx context.Context, s *models.BreathingSession) error {
	if f.err != nil {
		return f.err
	}
	f.sessions = append(f.sessions, s)
	return nil
}

func (f *fakeBreathingRepo) List(ctx context.Context, userID string, limit int) ([]*models.BreathingSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions, nil
}

// --- manager ---

type fakeRepoManager struct {
	users          *fakeUsersRepo
	refresh        *fakeRefreshRepo
	moods          *fakeMoodsRepo
	questionnaires *fakeQuestionnairesRepo
	preferences    *fakePreferencesRepo
	journal        *fakeJournalRepo
	breathing      *fakeBreathingRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:          &fakeUsersRepo{},
		refresh:        &fakeRefreshRepo{},
		moods:          &fakeMoodsRepo{},
		questionnaires: &fakeQuestionnairesRepo{},
		preferences:    &fakePreferencesRepo{},
		journal:        &fakeJournalRepo{},
		breathing:      &fakeBreathingRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error       { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository                 { return m.users }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository { return m.refresh }
func (m *fakeRepoManager) Moods(db dbx.DBTX) moods.Repository                 { return m.moods }
func (m *fakeRepoManager) Questionnaires(db dbx.DBTX) questionnaires.Repository {
	return m.questionnaires
}
func (m *fakeRepoManager) Preferences(db dbx.DBTX) preferences.Repository { return m.preferences }
func (m *fakeRepoManager) Journal(db dbx.DBTX) journal.Repository         { return m.journal }
func (m *fakeRepoManager) Breathing(db dbx.DBTX) breathing.Repository     { return m.breathing }

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []changes.Event
}

func (p *recordingPublisher) Publish(ev changes.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) Events() []changes.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]changes.Event(nil), p.events...)
}
