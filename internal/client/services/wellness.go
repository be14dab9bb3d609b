package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/mindkeeper/internal/api"
	"github.com/dmitrijs2005/mindkeeper/internal/client/client"
	"github.com/dmitrijs2005/mindkeeper/internal/client/repositories/dashboards"
	"github.com/dmitrijs2005/mindkeeper/internal/common"
	"github.com/dmitrijs2005/mindkeeper/internal/filex"
	"github.com/dmitrijs2005/mindkeeper/internal/logging"
	"github.com/dmitrijs2005/mindkeeper/internal/netx"
)

// download is a test seam for netx.Download.
var download = netx.Download

type WellnessService interface {
	// Dashboard fetches the live dashboard and caches it. When the server is
	// unreachable it falls back to the cached copy and reports cached=true.
	Dashboard(ctx context.Context) (d *api.Dashboard, cached bool, err error)
	// Watch streams dashboards to fn, caching each one.
	Watch(ctx context.Context, fn func(*api.Dashboard)) error

	Instruments(ctx context.Context) ([]api.Instrument, error)
	Instrument(ctx context.Context, kind string) (*api.Instrument, error)
	LogMood(ctx context.Context, mood, note string) (*api.MoodLog, error)
	SubmitQuestionnaire(ctx context.Context, kind string, answers map[string]int) (*api.QuestionnaireResult, error)

	Preferences(ctx context.Context) (*api.Preferences, error)
	UpdatePreferences(ctx context.Context, p *api.Preferences) (*api.Preferences, error)

	AddJournalEntry(ctx context.Context, title, body string) (*api.JournalEntry, error)
	JournalEntries(ctx context.Context, limit int) ([]api.JournalEntry, error)

	BreathingPattern(ctx context.Context) (*api.BreathingPattern, error)
	RecordBreathing(ctx context.Context, cycles int) (*api.BreathingSession, error)
	BreathingSessions(ctx context.Context, limit int) ([]api.BreathingSession, error)

	// Export asks the server for a data export and downloads it into dir.
	// It returns the path of the saved file.
	Export(ctx context.Context, dir string) (string, error)
}

type wellnessService struct {
	client   client.Client
	cache    dashboards.Repository
	userName func() string
	log      logging.Logger
	now      func() time.Time

	mu          sync.Mutex
	instruments []api.Instrument
}

func NewWellnessService(c client.Client, db *sql.DB, userName func() string, l logging.Logger) WellnessService {
	return &wellnessService{
		client:   c,
		cache:    dashboards.NewSQLiteRepository(db),
		userName: userName,
		log:      l.With("module", "wellness"),
		now:      time.Now,
	}
}

func (s *wellnessService) remember(ctx context.Context, d *api.Dashboard) {
	user := s.userName()
	if user == "" {
		return
	}
	if err := s.cache.Save(ctx, user, d, s.now()); err != nil {
		s.log.Warn(ctx, "caching dashboard failed", "error", err)
	}
}

func (s *wellnessService) Dashboard(ctx context.Context) (*api.Dashboard, bool, error) {
	d, err := s.client.GetDashboard(ctx)
	if err == nil {
		s.remember(ctx, d)
		return d, false, nil
	}
	if !errors.Is(err, client.ErrUnavailable) {
		return nil, false, err
	}

	cached, cerr := s.cache.Load(ctx, s.userName())
	if cerr != nil {
		if errors.Is(cerr, common.ErrorNotFound) {
			return nil, false, client.ErrLocalDataNotAvailable
		}
		return nil, false, fmt.Errorf("reading cached dashboard: %w", cerr)
	}
	s.log.Debug(ctx, "serving cached dashboard", "cached_at", cached.CachedAt)
	return &cached.Dashboard, true, nil
}

func (s *wellnessService) Watch(ctx context.Context, fn func(*api.Dashboard)) error {
	return s.client.WatchDashboard(ctx, func(d *api.Dashboard) {
		s.remember(ctx, d)
		fn(d)
	})
}

func (s *wellnessService) Instruments(ctx context.Context) ([]api.Instrument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.instruments != nil {
		return s.instruments, nil
	}
	list, err := s.client.ListInstruments(ctx)
	if err != nil {
		return nil, err
	}
	s.instruments = list
	return list, nil
}

func (s *wellnessService) Instrument(ctx context.Context, kind string) (*api.Instrument, error) {
	list, err := s.Instruments(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Type == kind {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("%w: unknown questionnaire %q", common.ErrorNotFound, kind)
}

func (s *wellnessService) LogMood(ctx context.Context, mood, note string) (*api.MoodLog, error) {
	var n *string
	if note = strings.TrimSpace(note); note != "" {
		n = &note
	}
	return s.client.LogMood(ctx, mood, n)
}

func (s *wellnessService) SubmitQuestionnaire(ctx context.Context, kind string, answers map[string]int) (*api.QuestionnaireResult, error) {
	return s.client.SubmitQuestionnaire(ctx, kind, answers)
}

func (s *wellnessService) Preferences(ctx context.Context) (*api.Preferences, error) {
	return s.client.GetPreferences(ctx)
}

func (s *wellnessService) UpdatePreferences(ctx context.Context, p *api.Preferences) (*api.Preferences, error) {
	return s.client.UpdatePreferences(ctx, p)
}

func (s *wellnessService) AddJournalEntry(ctx context.Context, title, body string) (*api.JournalEntry, error) {
	var t *string
	if title = strings.TrimSpace(title); title != "" {
		t = &title
	}
	return s.client.AddJournalEntry(ctx, t, body)
}

func (s *wellnessService) JournalEntries(ctx context.Context, limit int) ([]api.JournalEntry, error) {
	return s.client.ListJournalEntries(ctx, limit)
}

func (s *wellnessService) BreathingPattern(ctx context.Context) (*api.BreathingPattern, error) {
	return s.client.GetBreathingPattern(ctx)
}

func (s *wellnessService) RecordBreathing(ctx context.Context, cycles int) (*api.BreathingSession, error) {
	return s.client.RecordBreathing(ctx, cycles)
}

func (s *wellnessService) BreathingSessions(ctx context.Context, limit int) ([]api.BreathingSession, error) {
	return s.client.ListBreathingSessions(ctx, limit)
}

func (s *wellnessService) Export(ctx context.Context, dir string) (string, error) {
	resp, err := s.client.ExportData(ctx)
	if err != nil {
		return "", fmt.Errorf("export request error: %w", err)
	}

	target, err := filex.EnsureDir(dir)
	if err != nil {
		return "", err
	}

	path, err := filex.SaveAs(target, resp.Key, func(w io.Writer) error {
		_, err := download(ctx, resp.URL, w)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("export download error: %w", err)
	}

	s.log.Info(ctx, "export saved", "path", path, "link_expires_at", resp.ExpiresAt)
	return path, nil
}
