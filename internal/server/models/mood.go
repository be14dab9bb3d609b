// Package models defines server-side data models persisted in the database
// and the derived wellness views built from them.
package models

import (
	"time"

	"github.com/dmitrijs2005/mindkeeper/internal/scoring"
)

// MoodCategory is one of the fixed, ordered mood check-in values.
type MoodCategory = scoring.MoodCategory

const (
	MoodTerrible = scoring.MoodTerrible
	MoodBad      = scoring.MoodBad
	MoodOkay     = scoring.MoodOkay
	MoodGood     = scoring.MoodGood
	MoodGreat    = scoring.MoodGreat
)

// MoodCategories lists the categories from worst to best.
var MoodCategories = scoring.MoodCategories

// MoodLog is a single mood check-in. Stored rows are never updated.
type MoodLog struct {
	ID        string
	UserID    string
	Mood      MoodCategory
	Note      *string
	CreatedAt time.Time
}
