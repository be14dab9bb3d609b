package cli

import (
	"context"
	"fmt"
)

const listLimit = 10

// Journal adds a journal entry with an optional title.
func (a *App) Journal(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title (optional)", a.out)
	if err != nil {
		return err
	}
	body, err := GetMultiline(a.reader, "Write your entry", a.out)
	if err != nil {
		return err
	}
	if body == "" {
		fmt.Fprintln(a.out, "Empty entry, nothing saved")
		return nil
	}

	if _, err := a.wellness.AddJournalEntry(ctx, title, body); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Entry saved")
	return nil
}

// Entries lists the most recent journal entries.
func (a *App) Entries(ctx context.Context) error {
	entries, err := a.wellness.JournalEntries(ctx, listLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No entries yet")
		return nil
	}

	for _, e := range entries {
		title := "(untitled)"
		if e.Title != nil {
			title = *e.Title
		}
		fmt.Fprintf(a.out, "%s  %s\n%s\n\n", e.CreatedAt.Local().Format("2006-01-02 15:04"), title, e.Body)
	}
	return nil
}
