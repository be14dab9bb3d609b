package models

import "time"

// BreathingPhase is one step of the guided breathing loop.
type BreathingPhase struct {
	Name     string
	Label    string
	Duration time.Duration
}

// BreathingPattern is the guided cycle: inhale, hold, exhale.
var BreathingPattern = []BreathingPhase{
	{Name: "inhale", Label: "Breathe In", Duration: 4 * time.Second},
	{Name: "hold", Label: "Hold", Duration: 4 * time.Second},
	{Name: "exhale", Label: "Breathe Out", Duration: 6 * time.Second},
}

// CycleDuration is the length of one full pattern cycle.
func CycleDuration() time.Duration {
	var d time.Duration
	for _, p := range BreathingPattern {
		d += p.Duration
	}
	return d
}

// BreathingSession records a completed guided session.
type BreathingSession struct {
	ID              string
	UserID          string
	Cycles          int
	DurationSeconds int
	CreatedAt       time.Time
}
