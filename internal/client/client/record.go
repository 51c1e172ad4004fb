package client

import (
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/dmitrijs2005/dailyjournal/internal/client/models"
)

// Record is the flat document kept under each remote key.
type Record struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Date      string `json:"date"`
	Timestamp int64  `json:"timestamp"`
}

// HashKey derives the numeric id stored alongside a remote record. It is not
// reversible and collisions are possible; the key remains the identity.
func HashKey(key string) int64 {
	return int64(xxhash.Sum64String(key) & math.MaxInt64)
}

// toRemote converts r read from key. A record written without an id (an
// interrupted append) gets the id derived from its key.
func (r Record) toRemote(key string) models.RemoteEntry {
	id := r.ID
	if id == 0 {
		id = HashKey(key)
	}
	return models.RemoteEntry{
		Key: key,
		Entry: models.JournalEntry{
			ID:      id,
			Title:   r.Title,
			Content: r.Content,
			Date:    r.Date,
		},
		Timestamp: r.Timestamp,
	}
}
