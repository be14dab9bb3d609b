package models

import "time"

type FontSize string

const (
	FontSmall      FontSize = "small"
	FontMedium     FontSize = "medium"
	FontLarge      FontSize = "large"
	FontExtraLarge FontSize = "extraLarge"
)

type ContrastMode string

const (
	ContrastNormal    ContrastMode = "normal"
	ContrastHigh      ContrastMode = "high"
	ContrastExtraHigh ContrastMode = "extraHigh"
)

// SupportedLanguages are the interface languages a user can pick.
var SupportedLanguages = []string{"en", "zh", "hi", "es", "fr", "ar", "bn", "pt", "ru", "ja"}

// TrackerFlags selects which wellness dimensions a user tracks.
type TrackerFlags struct {
	Mood            bool
	Focus           bool
	Anxiety         bool
	Depression      bool
	PhoneDependence bool
}

// AllTrackers has every tracker enabled.
func AllTrackers() TrackerFlags {
	return TrackerFlags{Mood: true, Focus: true, Anxiety: true, Depression: true, PhoneDependence: true}
}

// UserPreferences is unique per user and written with upsert semantics.
type UserPreferences struct {
	UserID    string
	Trackers  TrackerFlags
	Language  string
	FontSize  FontSize
	Contrast  ContrastMode
	UpdatedAt time.Time
}

// DefaultPreferences is what a user without a stored row gets.
func DefaultPreferences(userID string) *UserPreferences {
	return &UserPreferences{
		UserID:   userID,
		Trackers: AllTrackers(),
		Language: "en",
		FontSize: FontMedium,
		Contrast: ContrastNormal,
	}
}

// Normalize replaces unknown display tiers with their defaults.
func (p *UserPreferences) Normalize() {
	switch p.FontSize {
	case FontSmall, FontMedium, FontLarge, FontExtraLarge:
	default:
		p.FontSize = FontMedium
	}
	switch p.Contrast {
	case ContrastNormal, ContrastHigh, ContrastExtraHigh:
	default:
		p.Contrast = ContrastNormal
	}
}
