package client

import (
	"context"

	"github.com/dmitrijs2005/mindkeeper/internal/api"
)

// Client is the CLI's view of the MindKeeper backend.
//
// Implementations keep the current token pair and attach the access token to
// every authenticated call. Errors are mapped to ErrUnavailable and
// ErrUnauthorized where the transport allows it.
type Client interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, userName string, password []byte) error
	Login(ctx context.Context, userName string, password []byte) error
	Logout(ctx context.Context) error

	// Tokens returns the current access and refresh tokens.
	Tokens() (access, refresh string)
	// SetTokens restores a previously saved session.
	SetTokens(access, refresh string)
	// OnTokensRefreshed registers fn to be called after a transparent refresh.
	OnTokensRefreshed(fn func(access, refresh string))

	ListInstruments(ctx context.Context) ([]api.Instrument, error)
	LogMood(ctx context.Context, mood string, note *string) (*api.MoodLog, error)
	SubmitQuestionnaire(ctx context.Context, kind string, answers map[string]int) (*api.QuestionnaireResult, error)

	GetDashboard(ctx context.Context) (*api.Dashboard, error)
	// WatchDashboard calls fn for every dashboard the server pushes until ctx
	// is done or the stream fails.
	WatchDashboard(ctx context.Context, fn func(*api.Dashboard)) error

	GetPreferences(ctx context.Context) (*api.Preferences, error)
	UpdatePreferences(ctx context.Context, p *api.Preferences) (*api.Preferences, error)

	AddJournalEntry(ctx context.Context, title *string, body string) (*api.JournalEntry, error)
	ListJournalEntries(ctx context.Context, limit int) ([]api.JournalEntry, error)

	GetBreathingPattern(ctx context.Context) (*api.BreathingPattern, error)
	RecordBreathing(ctx context.Context, cycles int) (*api.BreathingSession, error)
	ListBreathingSessions(ctx context.Context, limit int) ([]api.BreathingSession, error)

	ExportData(ctx context.Context) (*api.ExportDataResponse, error)

	Close() error
}
