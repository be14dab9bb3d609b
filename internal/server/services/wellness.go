package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mindkeeper/internal/common"
	"github.com/dmitrijs2005/mindkeeper/internal/instruments"
	"github.com/dmitrijs2005/mindkeeper/internal/scoring"
	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
	"github.com/dmitrijs2005/mindkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mindkeeper/internal/timex"
)

// WellnessAggregator selects the records that feed each wellness dimension
// and runs them through the scoring package. It keeps no state between
// calls; every method is a fresh read of the store.
//
// Two windowing asymmetries are deliberate: the snapshot reads the latest
// questionnaire of each type with no lower bound, while the missing-data
// check and the phone state only consider the lookback window.
type WellnessAggregator struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         timex.Clock
}

func NewWellnessAggregator(db *sql.DB, rm repomanager.RepositoryManager, now timex.Clock) *WellnessAggregator {
	if now == nil {
		now = time.Now
	}
	return &WellnessAggregator{db: db, repomanager: rm, now: now}
}

func fetchFailed(what string, err error) error {
	return fmt.Errorf("%w: %s: %v", common.ErrFetchFailed, what, err)
}

// BuildSnapshot returns the four dashboard percentages. Dimensions without
// data are 50. A failed read only resets its own dimension to 50: the
// snapshot is always complete and the failures come back joined, each
// wrapping common.ErrFetchFailed.
func (a *WellnessAggregator) BuildSnapshot(ctx context.Context, userID string, lookbackDays int) (models.WellnessSnapshot, error) {
	since := timex.WindowStart(a.now(), lookbackDays)
	var errs []error

	snapshot := models.WellnessSnapshot{Mood: scoring.NeutralScore}
	logs, err := a.repomanager.Moods(a.db).SelectSince(ctx, userID, since)
	if err != nil {
		errs = append(errs, fetchFailed("mood logs", err))
	} else {
		moods := make([]models.MoodCategory, len(logs))
		for i, l := range logs {
			moods[i] = l.Mood
		}
		snapshot.Mood = scoring.NormalizeMood(moods)
	}

	dims := []struct {
		instrument models.InstrumentType
		dst        *int
		normalize  func(raw, max int) int
	}{
		{models.InstrumentAnxiety, &snapshot.Anxiety, scoring.NormalizeInverted},
		{models.InstrumentDepression, &snapshot.Depression, scoring.NormalizeInverted},
		{models.InstrumentFocus, &snapshot.Focus, scoring.NormalizeDirect},
	}

	results := a.repomanager.Questionnaires(a.db)
	for _, d := range dims {
		latest, err := results.Latest(ctx, userID, d.instrument, nil)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			*d.dst = scoring.NeutralScore
		case err != nil:
			*d.dst = scoring.NeutralScore
			errs = append(errs, fetchFailed(string(d.instrument)+" result", err))
		default:
			*d.dst = d.normalize(latest.Score, instruments.MaxScore(d.instrument))
		}
	}

	return snapshot, errors.Join(errs...)
}

var missingLabels = map[models.Dimension]string{
	models.DimensionMood:       "Mood",
	models.DimensionAnxiety:    "Anxiety",
	models.DimensionDepression: "Depression",
	models.DimensionFocus:      "Focus",
}

// FindMissingDimensions lists enabled dimensions with no record inside the
// window, always in the order mood, anxiety, depression, focus. Each check
// runs on its own; a dimension whose check fails counts as missing and the
// failures come back joined alongside the full list.
func (a *WellnessAggregator) FindMissingDimensions(ctx context.Context, userID string, enabled models.TrackerFlags, lookbackDays int) ([]models.MissingDimension, error) {
	since := timex.WindowStart(a.now(), lookbackDays)

	checks := []struct {
		dim     models.Dimension
		enabled bool
		exists  func() (bool, error)
	}{
		{models.DimensionMood, enabled.Mood, func() (bool, error) {
			return a.repomanager.Moods(a.db).ExistsSince(ctx, userID, since)
		}},
		{models.DimensionAnxiety, enabled.Anxiety, a.resultExists(ctx, userID, models.InstrumentAnxiety, since)},
		{models.DimensionDepression, enabled.Depression, a.resultExists(ctx, userID, models.InstrumentDepression, since)},
		{models.DimensionFocus, enabled.Focus, a.resultExists(ctx, userID, models.InstrumentFocus, since)},
	}

	var (
		missing []models.MissingDimension
		errs    []error
	)
	for _, c := range checks {
		if !c.enabled {
			continue
		}
		ok, err := c.exists()
		if err != nil {
			errs = append(errs, fetchFailed(string(c.dim)+" existence", err))
			ok = false
		}
		if !ok {
			missing = append(missing, models.MissingDimension{Dimension: c.dim, Label: missingLabels[c.dim]})
		}
	}
	return missing, errors.Join(errs...)
}

func (a *WellnessAggregator) resultExists(ctx context.Context, userID string, t models.InstrumentType, since time.Time) func() (bool, error) {
	return func() (bool, error) {
		return a.repomanager.Questionnaires(a.db).ExistsSince(ctx, userID, t, since)
	}
}

// BuildPhoneDependenceState scores the newest phone habits result inside the
// window. Older results never count; with none in the window Score is nil.
func (a *WellnessAggregator) BuildPhoneDependenceState(ctx context.Context, userID string, lookbackDays int) (models.PhoneDependenceState, error) {
	since := timex.WindowStart(a.now(), lookbackDays)

	latest, err := a.repomanager.Questionnaires(a.db).Latest(ctx, userID, models.InstrumentPhoneHabits, &since)
	if errors.Is(err, common.ErrorNotFound) {
		return models.PhoneDependenceState{}, nil
	}
	if err != nil {
		return models.PhoneDependenceState{}, fetchFailed("phone habits result", err)
	}

	score := scoring.NormalizePhoneDependence(latest.Score, scoring.PhoneHabitsScaleMax)
	return models.PhoneDependenceState{Score: &score, Tier: scoring.ClassifySeverity(score)}, nil
}
