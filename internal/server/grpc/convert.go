package grpc

import (
	"time"

	"github.com/dmitrijs2005/mindkeeper/internal/api"
	"github.com/dmitrijs2005/mindkeeper/internal/instruments"
	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
)

func toAPIInstrument(in *instruments.Instrument) api.Instrument {
	out := api.Instrument{
		Type:     string(in.Type),
		Title:    in.Title,
		Preamble: in.Preamble,
		MaxScore: in.MaxScore(),
	}
	for _, q := range in.Questions {
		aq := api.Question{ID: q.ID, Text: q.Text}
		for _, o := range q.Options {
			aq.Options = append(aq.Options, api.Option{Value: o.Value, Label: o.Label})
		}
		out.Questions = append(out.Questions, aq)
	}
	return out
}

func toAPIMoodLog(l *models.MoodLog) *api.MoodLog {
	return &api.MoodLog{ID: l.ID, Mood: string(l.Mood), Note: l.Note, CreatedAt: l.CreatedAt}
}

func toAPIResult(r *models.QuestionnaireResult) *api.QuestionnaireResult {
	return &api.QuestionnaireResult{
		ID:        r.ID,
		Type:      string(r.Instrument),
		Score:     r.Score,
		MaxScore:  instruments.MaxScore(r.Instrument),
		CreatedAt: r.CreatedAt,
	}
}

func toAPIPreferences(p *models.UserPreferences) *api.Preferences {
	return &api.Preferences{
		Trackers: api.Trackers{
			Mood:            p.Trackers.Mood,
			Focus:           p.Trackers.Focus,
			Anxiety:         p.Trackers.Anxiety,
			Depression:      p.Trackers.Depression,
			PhoneDependence: p.Trackers.PhoneDependence,
		},
		Language:  p.Language,
		FontSize:  string(p.FontSize),
		Contrast:  string(p.Contrast),
		UpdatedAt: p.UpdatedAt,
	}
}

func fromAPIPreferences(userID string, p *api.Preferences) *models.UserPreferences {
	return &models.UserPreferences{
		UserID: userID,
		Trackers: models.TrackerFlags{
			Mood:            p.Trackers.Mood,
			Focus:           p.Trackers.Focus,
			Anxiety:         p.Trackers.Anxiety,
			Depression:      p.Trackers.Depression,
			PhoneDependence: p.Trackers.PhoneDependence,
		},
		Language: p.Language,
		FontSize: models.FontSize(p.FontSize),
		Contrast: models.ContrastMode(p.Contrast),
	}
}

func toAPIDashboard(d *models.Dashboard, at time.Time) *api.Dashboard {
	out := &api.Dashboard{
		Snapshot: api.Snapshot{
			Mood:       d.Snapshot.Mood,
			Focus:      d.Snapshot.Focus,
			Anxiety:    d.Snapshot.Anxiety,
			Depression: d.Snapshot.Depression,
		},
		Missing:     make([]api.MissingDimension, 0, len(d.Missing)),
		Phone:       api.PhoneDependence{Enabled: d.PhoneEnabled},
		Preferences: *toAPIPreferences(&d.Preferences),
		Degraded:    d.Degraded,
		GeneratedAt: at.UTC(),
	}
	for _, m := range d.Missing {
		out.Missing = append(out.Missing, api.MissingDimension{Dimension: string(m.Dimension), Label: m.Label})
	}
	if d.PhoneEnabled && d.Phone.Score != nil {
		score := *d.Phone.Score
		out.Phone.Score = &score
		out.Phone.Tier = string(d.Phone.Tier)
	}
	return out
}

func toAPIJournalEntry(e *models.JournalEntry) api.JournalEntry {
	return api.JournalEntry{ID: e.ID, Title: e.Title, Body: e.Body, CreatedAt: e.CreatedAt}
}

func toAPIBreathingSession(b *models.BreathingSession) api.BreathingSession {
	return api.BreathingSession{ID: b.ID, Cycles: b.Cycles, DurationSeconds: b.DurationSeconds, CreatedAt: b.CreatedAt}
}
