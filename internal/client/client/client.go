package client

import (
	"context"

	"github.com/dmitrijs2005/dailyjournal/internal/client/models"
)

// Client is the remote mirror facade.
type Client interface {
	// Save stores e under a freshly generated key and returns that key.
	Save(ctx context.Context, e models.JournalEntry) (string, error)
	// GetAll returns every mirrored entry ordered by key.
	GetAll(ctx context.Context) ([]models.RemoteEntry, error)
	// GetByID returns the entry stored under key, or nil when there is none.
	GetByID(ctx context.Context, key string) (*models.RemoteEntry, error)
	Delete(ctx context.Context, key string) error
	Close() error
}
