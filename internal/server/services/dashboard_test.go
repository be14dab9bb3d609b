package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mindkeeper/internal/logging"
	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
)

func newDashboard(t *testing.T, rm *fakeRepoManager) *DashboardService {
	t.Helper()
	prefs, err := NewPreferencesService(nil, rm, &recordingPublisher{}, 8)
	require.NoError(t, err)
	return NewDashboardService(prefs, newAggregator(rm), 7, logging.Nop())
}

func TestDashboard_Build(t *testing.T) {
	rm := newFakeRepoManager()
	rm.moods.logs = []*models.MoodLog{mood(models.MoodGood, 1)}
	rm.questionnaires.results = []*models.QuestionnaireResult{
		result(models.InstrumentAnxiety, 0, 1),
		result(models.InstrumentPhoneHabits, 3, 1),
	}

	d, err := newDashboard(t, rm).Build(context.Background(), uid)
	require.NoError(t, err)

	assert.False(t, d.Degraded)
	assert.Equal(t, models.WellnessSnapshot{Mood: 75, Anxiety: 100, Depression: 50, Focus: 50}, d.Snapshot)
	assert.Equal(t, []models.MissingDimension{
		{Dimension: models.DimensionDepression, Label: "Depression"},
		{Dimension: models.DimensionFocus, Label: "Focus"},
	}, d.Missing)
	assert.True(t, d.PhoneEnabled)
	require.NotNil(t, d.Phone.Score)
	assert.Equal(t, 14, *d.Phone.Score)
	assert.Equal(t, models.SeverityLow, d.Phone.Tier)
	assert.Equal(t, "en", d.Preferences.Language)
}

func TestDashboard_PhoneTrackerDisabled(t *testing.T) {
	rm := newFakeRepoManager()
	p := models.DefaultPreferences(uid)
	p.Trackers.PhoneDependence = false
	rm.preferences.rows = map[string]models.UserPreferences{uid: *p}
	rm.questionnaires.results = []*models.QuestionnaireResult{result(models.InstrumentPhoneHabits, 20, 1)}

	d, err := newDashboard(t, rm).Build(context.Background(), uid)
	require.NoError(t, err)
	assert.False(t, d.PhoneEnabled)
	assert.Nil(t, d.Phone.Score)
}

func TestDashboard_DegradesOnStoreFailure(t *testing.T) {
	rm := newFakeRepoManager()
	rm.preferences.getErr = errBoom{}
	rm.moods.selectErr = errBoom{}
	rm.moods.existsErr = errBoom{}
	rm.questionnaires.latestErr = errBoom{}

	d, err := newDashboard(t, rm).Build(context.Background(), uid)
	require.NoError(t, err)

	assert.True(t, d.Degraded)
	assert.Equal(t, models.WellnessSnapshot{Mood: 50, Anxiety: 50, Depression: 50, Focus: 50}, d.Snapshot)
	assert.Equal(t, allMissing(), d.Missing)
	assert.Nil(t, d.Phone.Score)
	assert.Equal(t, models.AllTrackers(), d.Preferences.Trackers)
}

func allMissing() []models.MissingDimension {
	return []models.MissingDimension{
		{Dimension: models.DimensionMood, Label: "Mood"},
		{Dimension: models.DimensionAnxiety, Label: "Anxiety"},
		{Dimension: models.DimensionDepression, Label: "Depression"},
		{Dimension: models.DimensionFocus, Label: "Focus"},
	}
}

func TestDashboard_FailedExistenceChecksShowAsMissing(t *testing.T) {
	rm := newFakeRepoManager()
	rm.questionnaires.existsErr = errBoom{}

	d, err := newDashboard(t, rm).Build(context.Background(), uid)
	require.NoError(t, err)

	assert.True(t, d.Degraded)
	assert.Equal(t, allMissing(), d.Missing)
}

func TestDashboard_PartialFailure(t *testing.T) {
	rm := newFakeRepoManager()
	rm.moods.logs = []*models.MoodLog{mood(models.MoodGreat, 1)}
	rm.questionnaires.existsErr = errBoom{}
	rm.questionnaires.latestErr = errBoom{}

	d, err := newDashboard(t, rm).Build(context.Background(), uid)
	require.NoError(t, err)

	assert.True(t, d.Degraded)
	assert.Equal(t, models.WellnessSnapshot{Mood: 100, Anxiety: 50, Depression: 50, Focus: 50}, d.Snapshot)
	assert.Equal(t, allMissing()[1:], d.Missing)
	assert.Nil(t, d.Phone.Score)
}

func TestDashboard_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d, err := newDashboard(t, newFakeRepoManager()).Build(ctx, uid)
	assert.Nil(t, d)
	assert.True(t, errors.Is(err, context.Canceled))
}
