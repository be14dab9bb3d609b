package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mindkeeper/internal/common"
	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
)

const uid = "user-1"

func newAggregator(rm *fakeRepoManager) *WellnessAggregator {
	return NewWellnessAggregator(nil, rm, fixedClock)
}

func mood(m models.MoodCategory, age float64) *models.MoodLog {
	return &models.MoodLog{ID: string(m), UserID: uid, Mood: m, CreatedAt: daysAgo(age)}
}

func result(t models.InstrumentType, score int, age float64) *models.QuestionnaireResult {
	return &models.QuestionnaireResult{ID: string(t), UserID: uid, Instrument: t, Score: score, CreatedAt: daysAgo(age)}
}

func TestBuildSnapshot_NoData(t *testing.T) {
	a := newAggregator(newFakeRepoManager())

	got, err := a.BuildSnapshot(context.Background(), uid, 7)
	require.NoError(t, err)
	assert.Equal(t, models.WellnessSnapshot{Mood: 50, Focus: 50, Anxiety: 50, Depression: 50}, got)
}

func TestBuildSnapshot_MoodIsWindowed(t *testing.T) {
	rm := newFakeRepoManager()
	rm.moods.logs = []*models.MoodLog{
		mood(models.MoodGreat, 1),
		mood(models.MoodGood, 6.9),
		mood(models.MoodTerrible, 8), // outside the window
		{ID: "other", UserID: "someone-else", Mood: models.MoodTerrible, CreatedAt: daysAgo(1)},
	}

	got, err := newAggregator(rm).BuildSnapshot(context.Background(), uid, 7)
	require.NoError(t, err)
	assert.Equal(t, 88, got.Mood)
}

func TestBuildSnapshot_QuestionnairesAreNotWindowed(t *testing.T) {
	rm := newFakeRepoManager()
	rm.questionnaires.results = []*models.QuestionnaireResult{
		result(models.InstrumentAnxiety, 7, 40),
		result(models.InstrumentAnxiety, 21, 90), // older, ignored
		result(models.InstrumentDepression, 21, 30),
		result(models.InstrumentFocus, 14, 365),
	}

	got, err := newAggregator(rm).BuildSnapshot(context.Background(), uid, 7)
	require.NoError(t, err)
	assert.Equal(t, models.WellnessSnapshot{Mood: 50, Anxiety: 67, Depression: 0, Focus: 50}, got)
}

func TestBuildSnapshot_FocusKeepsDirectPolarity(t *testing.T) {
	rm := newFakeRepoManager()
	rm.questionnaires.results = []*models.QuestionnaireResult{result(models.InstrumentFocus, 28, 1)}

	got, err := newAggregator(rm).BuildSnapshot(context.Background(), uid, 7)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Focus)
}

func TestBuildSnapshot_Idempotent(t *testing.T) {
	rm := newFakeRepoManager()
	rm.moods.logs = []*models.MoodLog{mood(models.MoodOkay, 2), mood(models.MoodBad, 3)}
	rm.questionnaires.results = []*models.QuestionnaireResult{result(models.InstrumentDepression, 5, 2)}
	a := newAggregator(rm)

	first, err := a.BuildSnapshot(context.Background(), uid, 7)
	require.NoError(t, err)
	second, err := a.BuildSnapshot(context.Background(), uid, 7)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildSnapshot_FetchFailures(t *testing.T) {
	t.Run("moods", func(t *testing.T) {
		rm := newFakeRepoManager()
		rm.moods.selectErr = errBoom{}
		rm.questionnaires.results = []*models.QuestionnaireResult{result(models.InstrumentAnxiety, 0, 30)}

		got, err := newAggregator(rm).BuildSnapshot(context.Background(), uid, 7)
		assert.True(t, errors.Is(err, common.ErrFetchFailed))
		assert.Equal(t, models.WellnessSnapshot{Mood: 50, Anxiety: 100, Depression: 50, Focus: 50}, got)
	})
	t.Run("questionnaires", func(t *testing.T) {
		rm := newFakeRepoManager()
		rm.moods.logs = []*models.MoodLog{mood(models.MoodGreat, 1)}
		rm.questionnaires.latestErr = errBoom{}

		got, err := newAggregator(rm).BuildSnapshot(context.Background(), uid, 7)
		assert.True(t, errors.Is(err, common.ErrFetchFailed))
		assert.Equal(t, models.WellnessSnapshot{Mood: 100, Anxiety: 50, Depression: 50, Focus: 50}, got)
	})
}

func TestFindMissingDimensions_AnxietyPresent(t *testing.T) {
	rm := newFakeRepoManager()
	rm.questionnaires.results = []*models.QuestionnaireResult{result(models.InstrumentAnxiety, 7, 2)}

	got, err := newAggregator(rm).FindMissingDimensions(context.Background(), uid, models.AllTrackers(), 7)
	require.NoError(t, err)
	assert.Equal(t, []models.MissingDimension{
		{Dimension: models.DimensionMood, Label: "Mood"},
		{Dimension: models.DimensionDepression, Label: "Depression"},
		{Dimension: models.DimensionFocus, Label: "Focus"},
	}, got)
}

func TestFindMissingDimensions_IsWindowed(t *testing.T) {
	rm := newFakeRepoManager()
	rm.moods.logs = []*models.MoodLog{mood(models.MoodGood, 10)}
	rm.questionnaires.results = []*models.QuestionnaireResult{
		result(models.InstrumentAnxiety, 7, 10),
		result(models.InstrumentDepression, 3, 6),
		result(models.InstrumentFocus, 3, 0.5),
	}

	got, err := newAggregator(rm).FindMissingDimensions(context.Background(), uid, models.AllTrackers(), 7)
	require.NoError(t, err)
	assert.Equal(t, []models.MissingDimension{
		{Dimension: models.DimensionMood, Label: "Mood"},
		{Dimension: models.DimensionAnxiety, Label: "Anxiety"},
	}, got)
}

func TestFindMissingDimensions_RespectsFlags(t *testing.T) {
	a := newAggregator(newFakeRepoManager())

	got, err := a.FindMissingDimensions(context.Background(), uid, models.TrackerFlags{Focus: true, PhoneDependence: true}, 7)
	require.NoError(t, err)
	assert.Equal(t, []models.MissingDimension{{Dimension: models.DimensionFocus, Label: "Focus"}}, got)

	got, err = a.FindMissingDimensions(context.Background(), uid, models.TrackerFlags{}, 7)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindMissingDimensions_FetchFailed(t *testing.T) {
	rm := newFakeRepoManager()
	rm.moods.logs = []*models.MoodLog{mood(models.MoodOkay, 1)}
	rm.questionnaires.existsErr = errBoom{}

	got, err := newAggregator(rm).FindMissingDimensions(context.Background(), uid, models.AllTrackers(), 7)
	assert.True(t, errors.Is(err, common.ErrFetchFailed))
	assert.Equal(t, []models.MissingDimension{
		{Dimension: models.DimensionAnxiety, Label: "Anxiety"},
		{Dimension: models.DimensionDepression, Label: "Depression"},
		{Dimension: models.DimensionFocus, Label: "Focus"},
	}, got)

	// a disabled tracker is never queried
	got, err = newAggregator(rm).FindMissingDimensions(context.Background(), uid, models.TrackerFlags{Mood: true}, 7)
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindMissingDimensions_FailedMoodCheckCountsAsMissing(t *testing.T) {
	rm := newFakeRepoManager()
	rm.moods.existsErr = errBoom{}
	rm.questionnaires.results = []*models.QuestionnaireResult{
		result(models.InstrumentAnxiety, 3, 1),
		result(models.InstrumentDepression, 3, 1),
		result(models.InstrumentFocus, 3, 1),
	}

	got, err := newAggregator(rm).FindMissingDimensions(context.Background(), uid, models.AllTrackers(), 7)
	assert.True(t, errors.Is(err, common.ErrFetchFailed))
	assert.Equal(t, []models.MissingDimension{{Dimension: models.DimensionMood, Label: "Mood"}}, got)
}

func TestBuildPhoneDependenceState(t *testing.T) {
	rm := newFakeRepoManager()
	rm.questionnaires.results = []*models.QuestionnaireResult{
		result(models.InstrumentPhoneHabits, 14, 3),
		result(models.InstrumentPhoneHabits, 2, 5),
	}

	got, err := newAggregator(rm).BuildPhoneDependenceState(context.Background(), uid, 7)
	require.NoError(t, err)
	require.NotNil(t, got.Score)
	assert.Equal(t, 67, *got.Score)
	assert.Equal(t, models.SeverityHigh, got.Tier)
}

func TestBuildPhoneDependenceState_OnlyOldResults(t *testing.T) {
	rm := newFakeRepoManager()
	rm.questionnaires.results = []*models.QuestionnaireResult{result(models.InstrumentPhoneHabits, 20, 8)}

	got, err := newAggregator(rm).BuildPhoneDependenceState(context.Background(), uid, 7)
	require.NoError(t, err)
	assert.Nil(t, got.Score)
}

func TestBuildPhoneDependenceState_ClampsLegacyScale(t *testing.T) {
	rm := newFakeRepoManager()
	rm.questionnaires.results = []*models.QuestionnaireResult{result(models.InstrumentPhoneHabits, 28, 1)}

	got, err := newAggregator(rm).BuildPhoneDependenceState(context.Background(), uid, 7)
	require.NoError(t, err)
	require.NotNil(t, got.Score)
	assert.Equal(t, 100, *got.Score)
}

func TestBuildPhoneDependenceState_FetchFailed(t *testing.T) {
	rm := newFakeRepoManager()
	rm.questionnaires.latestErr = errBoom{}

	_, err := newAggregator(rm).BuildPhoneDependenceState(context.Background(), uid, 7)
	assert.True(t, errors.Is(err, common.ErrFetchFailed))
}
