package pushlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dailyjournal/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Record(ctx context.Context, entryID int64, key string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO push_log (remote_key, entry_id, pushed_at) VALUES (?, ?, ?)
		ON CONFLICT(remote_key) DO UPDATE SET entry_id = excluded.entry_id, pushed_at = excluded.pushed_at
	`, key, entryID, at.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to record push[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Keys(ctx context.Context, entryID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT remote_key FROM push_log WHERE entry_id = ? ORDER BY pushed_at, remote_key`, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list push keys: %w", err)
	}
	return scanKeys(rows)
}

func (r *SQLiteRepository) PushedIDs(ctx context.Context) (map[int64]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT entry_id FROM push_log`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pushed ids: %w", err)
	}
	return scanIDs(rows)
}

func (r *SQLiteRepository) Forget(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM push_log WHERE remote_key = ?`, key); err != nil {
		return fmt.Errorf("failed to forget push[%s]: %w", key, err)
	}
	return nil
}

func scanKeys(rows *sql.Rows) ([]string, error) {
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan push_log row: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate push_log rows: %w", err)
	}
	return keys, nil
}

func scanIDs(rows *sql.Rows) (map[int64]struct{}, error) {
	defer rows.Close()

	result := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan push_log row: %w", err)
		}
		result[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate push_log rows: %w", err)
	}
	return result, nil
}
