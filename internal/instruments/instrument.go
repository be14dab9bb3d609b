// Package instruments holds the standardized questionnaires users can
// complete: question texts, option scales, maximum scores and answer
// validation.
package instruments

import (
	"fmt"
	"sort"

	"github.com/dmitrijs2005/mindkeeper/internal/common"
	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
)

// Option is one selectable answer with its score contribution.
type Option struct {
	Value int
	Label string
}

type Question struct {
	ID      string
	Text    string
	Options []Option
}

// maxValue returns the highest option value of the question.
func (q Question) maxValue() int {
	m := 0
	for _, o := range q.Options {
		if o.Value > m {
			m = o.Value
		}
	}
	return m
}

func (q Question) hasValue(v int) bool {
	for _, o := range q.Options {
		if o.Value == v {
			return true
		}
	}
	return false
}

// Instrument is a fixed question set with a fixed scoring scale.
type Instrument struct {
	Type      models.InstrumentType
	Title     string
	Preamble  string
	Questions []Question
}

// MaxScore is the highest total the instrument can produce. It is derived
// from the question set, so it cannot drift from it.
func (in *Instrument) MaxScore() int {
	total := 0
	for _, q := range in.Questions {
		total += q.maxValue()
	}
	return total
}

// Score validates a complete answer map and returns its total. Every
// question must be answered with a value on its scale and no unknown
// question ids may appear.
func (in *Instrument) Score(answers map[string]int) (int, error) {
	if len(answers) != len(in.Questions) {
		return 0, fmt.Errorf("%w: %s expects %d answers, got %d",
			common.ErrorValidation, in.Type, len(in.Questions), len(answers))
	}

	total := 0
	for _, q := range in.Questions {
		v, ok := answers[q.ID]
		if !ok {
			return 0, fmt.Errorf("%w: question %s is not answered", common.ErrorValidation, q.ID)
		}
		if !q.hasValue(v) {
			return 0, fmt.Errorf("%w: value %d is not an option of question %s", common.ErrorValidation, v, q.ID)
		}
		total += v
	}
	return total, nil
}

// Lookup returns the instrument for t. "phone-habits" is accepted as an
// alias of phone_habits.
func Lookup(t models.InstrumentType) (*Instrument, error) {
	if t == "phone-habits" {
		t = models.InstrumentPhoneHabits
	}
	in, ok := catalog[t]
	if !ok {
		return nil, fmt.Errorf("%w: unknown instrument %q", common.ErrorValidation, t)
	}
	return in, nil
}

// MaxScore returns the maximum total for t, or 0 for unknown types.
func MaxScore(t models.InstrumentType) int {
	in, err := Lookup(t)
	if err != nil {
		return 0
	}
	return in.MaxScore()
}

// All returns every instrument ordered by type name.
func All() []*Instrument {
	out := make([]*Instrument, 0, len(catalog))
	for _, in := range catalog {
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
