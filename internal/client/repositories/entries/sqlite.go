package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dailyjournal/internal/client/models"
	"github.com/dmitrijs2005/dailyjournal/internal/common"
	"github.com/dmitrijs2005/dailyjournal/internal/dbx"
)

// SQLiteRepository implements Repository over an embedded sqlite database.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Upsert inserts a new entry (ID 0) or replaces an existing one by id.
func (r *SQLiteRepository) Upsert(ctx context.Context, e *models.JournalEntry) error {
	if e.ID == 0 {
		query := `INSERT INTO journal_entries (title, content, date) VALUES (?, ?, ?)`
		res, err := r.db.ExecContext(ctx, query, e.Title, e.Content, e.Date)
		if err != nil {
			return fmt.Errorf("failed to insert entry: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get inserted id: %w", err)
		}
		e.ID = id
		return nil
	}

	query := `INSERT INTO journal_entries (id, title, content, date) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			date = excluded.date`
	if _, err := r.db.ExecContext(ctx, query, e.ID, e.Title, e.Content, e.Date); err != nil {
		return fmt.Errorf("failed to upsert entry: %w", err)
	}
	return nil
}

// UpsertAll upserts list inside a single transaction.
func (r *SQLiteRepository) UpsertAll(ctx context.Context, list []models.JournalEntry) error {
	return dbx.InTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		for i := range list {
			if err := repo.Upsert(ctx, &list[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetAll lists all entries ordered by id.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.JournalEntry, error) {
	query := `SELECT id, title, content, date FROM journal_entries ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	return scanEntries(rows)
}

// GetByID returns a single entry.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.JournalEntry, error) {
	query := `SELECT id, title, content, date FROM journal_entries WHERE id = ?`
	e := &models.JournalEntry{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Title, &e.Content, &e.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("entry %d: %w", id, common.ErrorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return e, nil
}

// DeleteByID removes an entry. A missing id is not an error.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	query := `DELETE FROM journal_entries WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}
