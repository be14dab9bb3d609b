package models

import "github.com/dmitrijs2005/mindkeeper/internal/scoring"

// Dimension names a wellness axis shown on the dashboard.
type Dimension string

const (
	DimensionMood       Dimension = "mood"
	DimensionAnxiety    Dimension = "anxiety"
	DimensionDepression Dimension = "depression"
	DimensionFocus      Dimension = "focus"
)

// WellnessSnapshot holds 0–100 wellness percentages. Missing data is
// represented by the neutral 50, never by an absent value.
type WellnessSnapshot struct {
	Mood       int
	Focus      int
	Anxiety    int
	Depression int
}

// MissingDimension is an enabled tracker with no record in the window.
type MissingDimension struct {
	Dimension Dimension
	Label     string
}

type Severity = scoring.Severity

const (
	SeverityLow      = scoring.SeverityLow
	SeverityModerate = scoring.SeverityModerate
	SeverityHigh     = scoring.SeverityHigh
)

// PhoneDependenceState is nil-scored when no phone habits result exists in
// the window.
type PhoneDependenceState struct {
	Score *int
	Tier  Severity
}

// Dashboard is everything the home screen renders.
type Dashboard struct {
	Snapshot     WellnessSnapshot
	Missing      []MissingDimension
	Phone        PhoneDependenceState
	PhoneEnabled bool
	Preferences  UserPreferences
	// Degraded is set when a store read failed and defaults were used.
	Degraded bool
}
