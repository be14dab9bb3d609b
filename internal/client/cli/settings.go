package cli

import (
	"context"
	"fmt"
)

var (
	languageChoices = []string{"en", "zh", "hi", "es", "fr", "ar", "bn", "pt", "ru", "ja"}
	fontChoices     = []string{"small", "medium", "large", "extraLarge"}
	contrastChoices = []string{"normal", "high", "extraHigh"}
	yesNo           = []string{"y", "n"}
)

func yn(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

// Settings shows the current preferences and lets the user change them.
// Pressing Enter keeps a value.
func (a *App) Settings(ctx context.Context) error {
	p, err := a.wellness.Preferences(ctx)
	if err != nil {
		return err
	}

	toggles := []struct {
		label string
		flag  *bool
	}{
		{"Track mood", &p.Trackers.Mood},
		{"Track focus", &p.Trackers.Focus},
		{"Track anxiety", &p.Trackers.Anxiety},
		{"Track depression", &p.Trackers.Depression},
		{"Track phone dependence", &p.Trackers.PhoneDependence},
	}
	for _, t := range toggles {
		v, err := GetChoice(a.reader, t.label, a.out, yesNo, yn(*t.flag))
		if err != nil {
			return err
		}
		*t.flag = v == "y"
	}

	if p.Language, err = GetChoice(a.reader, "Language", a.out, languageChoices, p.Language); err != nil {
		return err
	}
	if p.FontSize, err = GetChoice(a.reader, "Font size", a.out, fontChoices, p.FontSize); err != nil {
		return err
	}
	if p.Contrast, err = GetChoice(a.reader, "Contrast", a.out, contrastChoices, p.Contrast); err != nil {
		return err
	}

	if _, err := a.wellness.UpdatePreferences(ctx, p); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Settings saved")
	return nil
}
