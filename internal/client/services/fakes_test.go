package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/mindkeeper/internal/api"
	"github.com/dmitrijs2005/mindkeeper/internal/client/client"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	client.Client // unimplemented methods panic

	access, refresh string
	onRefresh       func(a, r string)

	registerErr error
	loginErr    error
	loginTokens [2]string
	logoutErr   error
	logoutCalls int
	closed      bool

	dashboard    *api.Dashboard
	dashboardErr error
	watchItems   []*api.Dashboard

	instruments    []api.Instrument
	instrumentsErr error
	listCalls      int

	lastNote  *string
	lastTitle *string

	export    *api.ExportDataResponse
	exportErr error
}

func (f *fakeClient) Tokens() (string, string) { return f.access, f.refresh }
func (f *fakeClient) SetTokens(a, r string)    { f.access, f.refresh = a, r }
func (f *fakeClient) OnTokensRefreshed(fn func(a, r string)) {
	f.onRefresh = fn
}
func (f *fakeClient) Ping(context.Context) error { return nil }
func (f *fakeClient) Close() error               { f.closed = true; return nil }

func (f *fakeClient) Register(context.Context, string, []byte) error { return f.registerErr }
func (f *fakeClient) Login(_ context.Context, _ string, _ []byte) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	f.SetTokens(f.loginTokens[0], f.loginTokens[1])
	return nil
}
func (f *fakeClient) Logout(context.Context) error {
	f.logoutCalls++
	f.SetTokens("", "")
	return f.logoutErr
}

func (f *fakeClient) GetDashboard(context.Context) (*api.Dashboard, error) {
	return f.dashboard, f.dashboardErr
}
func (f *fakeClient) WatchDashboard(_ context.Context, fn func(*api.Dashboard)) error {
	for _, d := range f.watchItems {
		fn(d)
	}
	return nil
}

func (f *fakeClient) ListInstruments(context.Context) ([]api.Instrument, error) {
	f.listCalls++
	return f.instruments, f.instrumentsErr
}
func (f *fakeClient) LogMood(_ context.Context, mood string, note *string) (*api.MoodLog, error) {
	f.lastNote = note
	return &api.MoodLog{ID: "m1", Mood: mood, Note: note}, nil
}
func (f *fakeClient) AddJournalEntry(_ context.Context, title *string, body string) (*api.JournalEntry, error) {
	f.lastTitle = title
	return &api.JournalEntry{ID: "j1", Title: title, Body: body}, nil
}
func (f *fakeClient) ExportData(context.Context) (*api.ExportDataResponse, error) {
	return f.export, f.exportErr
}
