package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/mindkeeper/internal/api"
	"github.com/dmitrijs2005/mindkeeper/internal/client/config"
	"github.com/dmitrijs2005/mindkeeper/internal/client/dashboard"
	"github.com/dmitrijs2005/mindkeeper/internal/client/services"
	"github.com/dmitrijs2005/mindkeeper/internal/logging"
)

type fakeAuth struct {
	user string

	regUser string
	regPass []byte
	regErr  error

	loginUser string
	loginPass []byte
	loginErr  error

	logoutErr error
	pingErr   error

	restoreUser string
	restoreErr  error
}

func (f *fakeAuth) Register(_ context.Context, user string, pass []byte) error {
	f.regUser, f.regPass = user, append([]byte(nil), pass...)
	return f.regErr
}
func (f *fakeAuth) Login(_ context.Context, user string, pass []byte) error {
	f.loginUser, f.loginPass = user, append([]byte(nil), pass...)
	if f.loginErr != nil {
		return f.loginErr
	}
	f.user = user
	return nil
}
func (f *fakeAuth) RestoreSession(context.Context) (bool, error) {
	if f.restoreErr != nil || f.restoreUser == "" {
		return false, f.restoreErr
	}
	f.user = f.restoreUser
	return true, nil
}
func (f *fakeAuth) Logout(context.Context) error {
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.user = ""
	return nil
}
func (f *fakeAuth) UserName() string                { return f.user }
func (f *fakeAuth) Ping(context.Context) error      { return f.pingErr }
func (f *fakeAuth) Close(ctx context.Context) error { return nil }

type fakeWellness struct {
	services.WellnessService // unimplemented methods panic

	dash       *api.Dashboard
	dashCached bool
	dashErr    error
	pushes     []*api.Dashboard
	watchErr   error

	instruments []api.Instrument
	lastKind    string
	lastAnswers map[string]int

	lastMood, lastNote string

	lastTitle, lastBody string
	entries             []api.JournalEntry

	pattern      *api.BreathingPattern
	recordCycles int

	prefs   *api.Preferences
	updated *api.Preferences

	exportDir  string
	exportPath string
	exportErr  error
}

func (f *fakeWellness) Dashboard(context.Context) (*api.Dashboard, bool, error) {
	return f.dash, f.dashCached, f.dashErr
}
func (f *fakeWellness) Watch(ctx context.Context, fn func(*api.Dashboard)) error {
	for _, d := range f.pushes {
		fn(d)
	}
	if f.watchErr != nil {
		return f.watchErr
	}
	<-ctx.Done()
	return nil
}
func (f *fakeWellness) Instruments(context.Context) ([]api.Instrument, error) {
	return f.instruments, nil
}
func (f *fakeWellness) Instrument(_ context.Context, kind string) (*api.Instrument, error) {
	for i := range f.instruments {
		if f.instruments[i].Type == kind {
			return &f.instruments[i], nil
		}
	}
	return nil, errNotFound
}
func (f *fakeWellness) SubmitQuestionnaire(_ context.Context, kind string, answers map[string]int) (*api.QuestionnaireResult, error) {
	f.lastKind, f.lastAnswers = kind, answers
	total := 0
	for _, v := range answers {
		total += v
	}
	return &api.QuestionnaireResult{Type: kind, Score: total, MaxScore: 3 * len(answers)}, nil
}
func (f *fakeWellness) LogMood(_ context.Context, mood, note string) (*api.MoodLog, error) {
	f.lastMood, f.lastNote = mood, note
	return &api.MoodLog{Mood: mood}, nil
}
func (f *fakeWellness) AddJournalEntry(_ context.Context, title, body string) (*api.JournalEntry, error) {
	f.lastTitle, f.lastBody = title, body
	return &api.JournalEntry{Body: body}, nil
}
func (f *fakeWellness) JournalEntries(context.Context, int) ([]api.JournalEntry, error) {
	return f.entries, nil
}
func (f *fakeWellness) BreathingPattern(context.Context) (*api.BreathingPattern, error) {
	return f.pattern, nil
}
func (f *fakeWellness) RecordBreathing(_ context.Context, cycles int) (*api.BreathingSession, error) {
	f.recordCycles = cycles
	return &api.BreathingSession{Cycles: cycles, DurationSeconds: cycles * f.pattern.CycleSeconds}, nil
}
func (f *fakeWellness) BreathingSessions(context.Context, int) ([]api.BreathingSession, error) {
	return []api.BreathingSession{{Cycles: 3, DurationSeconds: 42, CreatedAt: time.Now()}}, nil
}
func (f *fakeWellness) Preferences(context.Context) (*api.Preferences, error) {
	return f.prefs, nil
}
func (f *fakeWellness) UpdatePreferences(_ context.Context, p *api.Preferences) (*api.Preferences, error) {
	f.updated = p
	return p, nil
}
func (f *fakeWellness) Export(_ context.Context, dir string) (string, error) {
	f.exportDir = dir
	return f.exportPath, f.exportErr
}

type errString string

func (e errString) Error() string { return string(e) }

const errNotFound = errString("not found")

// newTestApp builds an App over fakes. input is what the user types.
func newTestApp(t *testing.T, auth *fakeAuth, w *fakeWellness, input ...string) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	return &App{
		config:      &config.Config{ExportDir: "exports"},
		authService: auth,
		wellness:    w,
		view:        dashboard.NewView(),
		log:         logging.Nop(),
		reader:      bufio.NewReader(strings.NewReader(strings.Join(input, "\n") + "\n")),
		out:         out,
	}, out
}

func stubCredentials(t *testing.T, username string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return username, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}
