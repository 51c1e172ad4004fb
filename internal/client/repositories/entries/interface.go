package entries

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/dailyjournal/internal/client/models"
)

// Repository describes the operations available on the local entry store.
type Repository interface {
	// Upsert inserts e, or replaces the row with the same id. When e.ID is 0
	// the store assigns an id and writes it back into e.
	Upsert(ctx context.Context, e *models.JournalEntry) error

	// UpsertAll upserts every entry in one transaction. Assigned ids are
	// written back into the slice.
	UpsertAll(ctx context.Context, list []models.JournalEntry) error

	// GetAll returns every entry ordered by id.
	GetAll(ctx context.Context) ([]models.JournalEntry, error)

	// GetByID returns a single entry or an error wrapping common.ErrorNotFound.
	GetByID(ctx context.Context, id int64) (*models.JournalEntry, error)

	// DeleteByID removes the entry with the given id, if any.
	DeleteByID(ctx context.Context, id int64) error
}

func scanEntries(rows *sql.Rows) ([]models.JournalEntry, error) {
	defer rows.Close()

	result := make([]models.JournalEntry, 0)
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(&e.ID, &e.Title, &e.Content, &e.Date); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return result, nil
}
