package instruments

import (
	"strconv"

	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
)

var frequency4 = []Option{
	{0, "Not at all"},
	{1, "Several days"},
	{2, "More than half the days"},
	{3, "Nearly every day"},
}

var frequency5 = []Option{
	{0, "Never"},
	{1, "Rarely"},
	{2, "Sometimes"},
	{3, "Often"},
	{4, "Very Often"},
}

var habit5 = []Option{
	{0, "Never"},
	{1, "Rarely"},
	{2, "Sometimes"},
	{3, "Often"},
	{4, "Always"},
}

func questions(opts []Option, texts ...string) []Question {
	qs := make([]Question, 0, len(texts))
	for i, t := range texts {
		qs = append(qs, Question{ID: strconv.Itoa(i + 1), Text: t, Options: opts})
	}
	return qs
}

func beck(id, text string, labels ...string) Question {
	q := Question{ID: id, Text: text}
	for i, l := range labels {
		q.Options = append(q.Options, Option{Value: i, Label: l})
	}
	return q
}

var catalog = map[models.InstrumentType]*Instrument{
	models.InstrumentAnxiety: {
		Type:     models.InstrumentAnxiety,
		Title:    "Anxiety Check-in (GAD-7)",
		Preamble: "Over the last 2 weeks, how often have you been bothered by the following?",
		Questions: questions(frequency4,
			"Feeling nervous, anxious, or on edge",
			"Not being able to stop or control worrying",
			"Worrying too much about different things",
			"Trouble relaxing",
			"Being so restless that it's hard to sit still",
			"Becoming easily annoyed or irritable",
			"Feeling afraid as if something awful might happen",
		),
	},
	models.InstrumentDepression: {
		Type:     models.InstrumentDepression,
		Title:    "Depression Check-in (Beck Depression Inventory)",
		Preamble: "Pick the statement that best describes how you have been feeling.",
		Questions: []Question{
			beck("1", "Sadness", "I do not feel sad", "I feel sad much of the time", "I am sad all the time", "I am so sad that I can't stand it"),
			beck("2", "Pessimism", "I am not discouraged about my future", "I feel more discouraged about my future", "I do not expect things to work out", "I feel my future is hopeless"),
			beck("3", "Past Failure", "I do not feel like a failure", "I have failed more than I should have", "I see a lot of failures", "I feel I am a total failure"),
			beck("4", "Loss of Pleasure", "I get as much pleasure as I ever did", "I don't enjoy things as much", "I get very little pleasure", "I can't get any pleasure"),
			beck("5", "Guilty Feelings", "I don't feel particularly guilty", "I feel guilty over many things", "I feel quite guilty most of the time", "I feel guilty all of the time"),
			beck("6", "Punishment Feelings", "I don't feel I am being punished", "I feel I may be punished", "I expect to be punished", "I feel I am being punished"),
			beck("7", "Self-Dislike", "I feel the same about myself", "I have lost confidence in myself", "I am disappointed in myself", "I dislike myself"),
		},
	},
	models.InstrumentFocus: {
		Type:     models.InstrumentFocus,
		Title:    "Focus Check-in (Adult Self-Report Scale)",
		Preamble: "Over the last 6 months, how often has each of these applied to you?",
		Questions: questions(frequency5,
			"How often do you have trouble wrapping up the final details of a project?",
			"How often do you have difficulty getting things in order when you have to do a task that requires organization?",
			"How often do you have problems remembering appointments or obligations?",
			"How often do you avoid or delay getting started when you have a task that requires a lot of thought?",
			"How often do you fidget or squirm with your hands or feet when you have to sit down for a long time?",
			"How often do you feel overly active and compelled to do things?",
			"How often do you have difficulty concentrating on what people say to you, even when they are speaking to you directly?",
		),
	},
	models.InstrumentPhoneHabits: {
		Type:     models.InstrumentPhoneHabits,
		Title:    "Phone Habits Check-in",
		Preamble: "How well do these describe your phone use lately?",
		Questions: questions(habit5,
			"How often do you check your phone within 5 minutes of waking up?",
			"How often do you feel anxious when you don't have your phone with you?",
			"How often do you use your phone during meals with others?",
			"How often do you reach for your phone when you feel bored?",
			"How often do you use your phone right before bed?",
			"How often do you interrupt conversations to check your phone?",
			"How often do you feel that you spend too much time on your phone?",
		),
	},
}
