// Package dbx holds the small database/sql helpers shared by the journal
// repositories: the DBTX handle implemented by both *sql.DB and *sql.Tx, a
// transaction runner, and the list of supported SQL drivers.
package dbx

import (
	"context"
	"database/sql"
)

// Driver names understood by sql.Open for the supported entry stores.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// DBTX is the subset of database/sql the repositories depend on.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction on db. The transaction is committed when
// fn returns nil and rolled back otherwise; a panic inside fn rolls back and is
// re-raised.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    return entries.NewSQLiteRepository(tx).Upsert(ctx, &e)
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(ctx, tx)
}

// TxStarter is implemented by *sql.DB. Repositories that receive one can open
// their own transactions for batch operations.
type TxStarter interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// InTx runs fn inside a transaction when db can start one, and directly on db
// when it is already a transaction (or any other DBTX).
func InTx(ctx context.Context, db DBTX, fn func(ctx context.Context, tx DBTX) error) error {
	sqlDB, ok := db.(*sql.DB)
	if !ok {
		return fn(ctx, db)
	}
	return WithTx(ctx, sqlDB, nil, fn)
}
