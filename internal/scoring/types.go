package scoring

// MoodCategory is one of the fixed, ordered mood check-in values.
type MoodCategory string

const (
	MoodTerrible MoodCategory = "terrible"
	MoodBad      MoodCategory = "bad"
	MoodOkay     MoodCategory = "okay"
	MoodGood     MoodCategory = "good"
	MoodGreat    MoodCategory = "great"
)

// MoodCategories lists the categories from worst to best.
var MoodCategories = []MoodCategory{MoodTerrible, MoodBad, MoodOkay, MoodGood, MoodGreat}

// Valid reports whether m is one of the five defined categories.
func (m MoodCategory) Valid() bool {
	for _, c := range MoodCategories {
		if m == c {
			return true
		}
	}
	return false
}

// Severity is the phone dependence tier shown next to the percentage.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityModerate Severity = "Moderate"
	SeverityHigh     Severity = "High"
)
