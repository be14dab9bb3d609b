package models

import "time"

type JournalEntry struct {
	ID        string
	UserID    string
	Title     *string
	Body      string
	CreatedAt time.Time
}
