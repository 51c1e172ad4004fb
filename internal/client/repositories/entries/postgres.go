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

// PostgresRepository implements Repository over PostgreSQL (pgx stdlib driver).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// syncIdentityQuery moves the identity sequence past the largest stored id,
// so that inserts with a caller-chosen id do not collide with later generated ones.
const syncIdentityQuery = `SELECT setval(pg_get_serial_sequence('journal_entries', 'id'), (SELECT COALESCE(MAX(id), 1) FROM journal_entries))`

// Upsert inserts a new entry (ID 0) and reads back the generated id, or
// replaces an existing row by id.
func (r *PostgresRepository) Upsert(ctx context.Context, e *models.JournalEntry) error {
	explicit, err := r.upsert(ctx, e)
	if err != nil || !explicit {
		return err
	}
	return r.syncIdentity(ctx)
}

// UpsertAll upserts list inside a single transaction. The identity sequence is
// resynchronised once, after the last row.
func (r *PostgresRepository) UpsertAll(ctx context.Context, list []models.JournalEntry) error {
	return dbx.InTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewPostgresRepository(tx)
		anyExplicit := false
		for i := range list {
			explicit, err := repo.upsert(ctx, &list[i])
			if err != nil {
				return err
			}
			anyExplicit = anyExplicit || explicit
		}
		if !anyExplicit {
			return nil
		}
		return repo.syncIdentity(ctx)
	})
}

// upsert writes e and reports whether it carried its own id.
func (r *PostgresRepository) upsert(ctx context.Context, e *models.JournalEntry) (bool, error) {
	if e.ID == 0 {
		query := `INSERT INTO journal_entries (title, content, date) VALUES ($1, $2, $3) RETURNING id`
		if err := r.db.QueryRowContext(ctx, query, e.Title, e.Content, e.Date).Scan(&e.ID); err != nil {
			return false, fmt.Errorf("failed to insert entry: %w", err)
		}
		return false, nil
	}

	query := `
		INSERT INTO journal_entries (id, title, content, date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			date = EXCLUDED.date`
	if _, err := r.db.ExecContext(ctx, query, e.ID, e.Title, e.Content, e.Date); err != nil {
		return true, fmt.Errorf("failed to upsert entry: %w", err)
	}
	return true, nil
}

func (r *PostgresRepository) syncIdentity(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, syncIdentityQuery); err != nil {
		return fmt.Errorf("failed to sync id sequence: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]models.JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, content, date FROM journal_entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	return scanEntries(rows)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.JournalEntry, error) {
	query := `SELECT id, title, content, date FROM journal_entries WHERE id = $1`
	e := &models.JournalEntry{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Title, &e.Content, &e.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("entry %d: %w", id, common.ErrorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}
