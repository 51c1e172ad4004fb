package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewJournalEntry_FormatsDate(t *testing.T) {
	now := time.Date(2026, time.March, 7, 22, 15, 0, 0, time.UTC)

	e := NewJournalEntry("Gym", "Ran 5k", now)

	assert.Equal(t, JournalEntry{ID: 0, Title: "Gym", Content: "Ran 5k", Date: "03/07/2026"}, e)
}

func TestRemoteEntry_SavedAt(t *testing.T) {
	r := RemoteEntry{Timestamp: 1_700_000_000_123}
	assert.Equal(t, int64(1_700_000_000_123), r.SavedAt().UnixMilli())
}
