// Package scoring turns raw mood check-ins and questionnaire totals into
// bounded 0–100 wellness percentages and phone-dependence severity tiers.
//
// Every function is total: empty inputs and non-positive maxima yield the
// neutral score instead of dividing by zero, and results are clamped to
// [0,100] even when the raw score is out of range.
package scoring

import "math"

// NeutralScore is the value reported for a dimension without data.
const NeutralScore = 50

// PhoneHabitsScaleMax is the maximum used when converting a phone habits
// total into a percentage.
//
// The phone habits instrument has 7 questions on a 0–4 scale (max 28), but
// the dependence bar has always divided by 21. The literal divisor is kept
// so existing results keep their meaning; totals above 21 clamp to 100.
const PhoneHabitsScaleMax = 21

// Severity thresholds for phone dependence percentages.
const (
	moderateFrom = 30
	highFrom     = 60
)

var moodValues = map[MoodCategory]int{
	MoodGreat:    100,
	MoodGood:     75,
	MoodOkay:     50,
	MoodBad:      25,
	MoodTerrible: 10,
}

// MoodValue maps a category to its wellness value. Unknown categories map
// to the neutral midpoint.
func MoodValue(m MoodCategory) int {
	if v, ok := moodValues[m]; ok {
		return v
	}
	return NeutralScore
}

// NormalizeMood returns the rounded mean of the mapped mood values, or
// NeutralScore for an empty input.
func NormalizeMood(moods []MoodCategory) int {
	if len(moods) == 0 {
		return NeutralScore
	}
	sum := 0
	for _, m := range moods {
		sum += MoodValue(m)
	}
	return clamp(roundHalfUp(float64(sum) / float64(len(moods))))
}

// NormalizeInverted is used where a lower raw score means better wellness
// (anxiety, depression): 100 - round(raw/max*100), clamped to [0,100].
func NormalizeInverted(rawScore, maxScore int) int {
	if maxScore <= 0 {
		return NeutralScore
	}
	return clamp(100 - percent(rawScore, maxScore))
}

// NormalizeDirect keeps the raw directionality: round(raw/max*100).
//
// It is applied to the focus (ASRS) instrument even though a higher ASRS
// total conventionally means more attention symptoms while the dashboard
// reads higher as healthier. The formula is kept as-is until the intended
// polarity is settled.
func NormalizeDirect(rawScore, maxScore int) int {
	if maxScore <= 0 {
		return NeutralScore
	}
	return clamp(percent(rawScore, maxScore))
}

// NormalizePhoneDependence converts a phone habits total into a dependence
// percentage; higher means more dependent. Pass PhoneHabitsScaleMax as
// maxScore unless a caller knows better.
func NormalizePhoneDependence(rawScore, maxScore int) int {
	if maxScore <= 0 {
		return NeutralScore
	}
	return clamp(percent(rawScore, maxScore))
}

// ClassifySeverity buckets a percentage: below 30 Low, 30–59 Moderate,
// 60 and above High.
func ClassifySeverity(percentage int) Severity {
	switch {
	case percentage < moderateFrom:
		return SeverityLow
	case percentage < highFrom:
		return SeverityModerate
	default:
		return SeverityHigh
	}
}

func percent(raw, max int) int {
	return roundHalfUp(float64(raw) / float64(max) * 100)
}

// roundHalfUp rounds .5 towards +Inf, so 66.5 becomes 67 and -0.5 becomes 0.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
