// Package models defines the journal entry as it is stored locally and as it
// appears in the remote mirror.
package models

import "time"

// DateLayout renders entry dates as MM/dd/yyyy.
const DateLayout = "01/02/2006"

// JournalEntry is a single journal record. ID 0 means "not stored yet"; the
// entry store assigns the real id on first upsert.
type JournalEntry struct {
	ID      int64  `json:"id"`
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Date    string `json:"date"`
}

// NewJournalEntry builds an unsaved entry dated from now.
func NewJournalEntry(title, content string, now time.Time) JournalEntry {
	return JournalEntry{
		Title:   title,
		Content: content,
		Date:    now.Format(DateLayout),
	}
}

// RemoteEntry is an entry read back from the remote mirror. Key is the
// generated document key; Entry.ID holds the numeric id derived from it.
type RemoteEntry struct {
	Key       string       `json:"key"`
	Entry     JournalEntry `json:"entry"`
	Timestamp int64        `json:"timestamp"`
}

// SavedAt converts Timestamp (unix milliseconds) to a time.Time.
func (r RemoteEntry) SavedAt() time.Time {
	return time.UnixMilli(r.Timestamp)
}
