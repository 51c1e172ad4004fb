package pushlog

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dailyjournal/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Record(ctx context.Context, entryID int64, key string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO push_log (remote_key, entry_id, pushed_at) VALUES ($1, $2, $3)
		ON CONFLICT (remote_key) DO UPDATE SET entry_id = EXCLUDED.entry_id, pushed_at = EXCLUDED.pushed_at
	`, key, entryID, at.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to record push[%s]: %w", key, err)
	}
	return nil
}

func (r *PostgresRepository) Keys(ctx context.Context, entryID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT remote_key FROM push_log WHERE entry_id = $1 ORDER BY pushed_at, remote_key`, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list push keys: %w", err)
	}
	return scanKeys(rows)
}

func (r *PostgresRepository) PushedIDs(ctx context.Context) (map[int64]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT entry_id FROM push_log`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pushed ids: %w", err)
	}
	return scanIDs(rows)
}

func (r *PostgresRepository) Forget(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM push_log WHERE remote_key = $1`, key); err != nil {
		return fmt.Errorf("failed to forget push[%s]: %w", key, err)
	}
	return nil
}
