package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mindkeeper/internal/api"
)

var moodChoices = []string{"terrible", "bad", "okay", "good", "great"}

// Mood records a mood check-in with an optional note.
func (a *App) Mood(ctx context.Context) error {
	mood, err := GetChoice(a.reader, "How are you feeling?", a.out, moodChoices, "")
	if err != nil {
		return err
	}
	if mood == "" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	note, err := getSimpleText(a.reader, "Note (optional)", a.out)
	if err != nil {
		return err
	}

	if _, err := a.wellness.LogMood(ctx, mood, note); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Mood %q saved\n", mood)
	return nil
}

// Checkin walks through the questionnaire of the given type and submits the
// answers.
func (a *App) Checkin(ctx context.Context, kind string) error {
	inst, err := a.wellness.Instrument(ctx, kind)
	if err != nil {
		list, lerr := a.wellness.Instruments(ctx)
		if lerr == nil {
			fmt.Fprintf(a.out, "Available check-ins: %s\n", instrumentTypes(list))
		}
		return err
	}

	fmt.Fprintln(a.out, inst.Title)
	if inst.Preamble != "" {
		fmt.Fprintln(a.out, inst.Preamble)
	}

	answers := make(map[string]int, len(inst.Questions))
	for i, q := range inst.Questions {
		fmt.Fprintf(a.out, "\n%d/%d. %s\n", i+1, len(inst.Questions), q.Text)
		values := make([]int, len(q.Options))
		for j, o := range q.Options {
			fmt.Fprintf(a.out, "  %d) %s\n", o.Value, o.Label)
			values[j] = o.Value
		}
		v, err := GetInt(a.reader, "Your answer", a.out, values)
		if err != nil {
			return err
		}
		answers[q.ID] = v
	}

	res, err := a.wellness.SubmitQuestionnaire(ctx, kind, answers)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\nScore: %d / %d\n", res.Score, res.MaxScore)
	return nil
}

func instrumentTypes(list []api.Instrument) string {
	s := ""
	for i, in := range list {
		if i > 0 {
			s += ", "
		}
		s += in.Type
	}
	return s
}
