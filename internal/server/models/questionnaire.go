package models

import "time"

// InstrumentType identifies a standardized questionnaire.
type InstrumentType string

const (
	InstrumentAnxiety     InstrumentType = "anxiety"
	InstrumentDepression  InstrumentType = "depression"
	InstrumentFocus       InstrumentType = "focus"
	InstrumentPhoneHabits InstrumentType = "phone_habits"
)

// QuestionnaireResult is one completed instrument. Score is the sum of the
// option values in Answers.
type QuestionnaireResult struct {
	ID         string
	UserID     string
	Instrument InstrumentType
	Score      int
	Answers    map[string]int
	CreatedAt  time.Time
}
