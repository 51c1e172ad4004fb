package client

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sync"

	"github.com/dmitrijs2005/dailyjournal/internal/client/migrations"
	"github.com/dmitrijs2005/dailyjournal/internal/client/repositories/entries"
	"github.com/dmitrijs2005/dailyjournal/internal/client/repositories/pushlog"
	"github.com/dmitrijs2005/dailyjournal/internal/common"
	"github.com/dmitrijs2005/dailyjournal/internal/dbx"
	"github.com/dmitrijs2005/dailyjournal/internal/filex"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	_ "modernc.org/sqlite"             // registers "sqlite"
)

// Repositories is the local persistence handle built at the composition root.
type Repositories struct {
	DB      *sql.DB
	Entry   entries.Repository
	PushLog pushlog.Repository
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}

// goose keeps its base FS and dialect in package globals.
var migrateMu sync.Mutex

func migrationSource(driver string) (fs.FS, string, error) {
	switch driver {
	case dbx.DriverSQLite:
		return migrations.SQLite(), "sqlite3", nil
	case dbx.DriverPostgres:
		return migrations.Postgres(), "postgres", nil
	default:
		return nil, "", fmt.Errorf("%w: %q", common.ErrorUnknownDriver, driver)
	}
}

// RunMigrations applies the embedded migrations for driver. Already applied
// migrations are skipped.
func RunMigrations(ctx context.Context, db *sql.DB, driver string) error {
	fsys, dialect, err := migrationSource(driver)
	if err != nil {
		return err
	}

	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	goose.SetLogger(goose.NopLogger())

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// InitDatabase opens dsn with driver, migrates it and returns the repositories
// bound to it.
func InitDatabase(ctx context.Context, driver, dsn string) (*Repositories, error) {
	if _, _, err := migrationSource(driver); err != nil {
		return nil, err
	}

	if driver == dbx.DriverSQLite {
		if path := filex.SQLitePath(dsn); path != "" {
			if err := filex.EnsureParentDir(path); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == dbx.DriverSQLite {
		// sqlite allows a single writer
		db.SetMaxOpenConns(1)
	}

	if err := RunMigrations(ctx, db, driver); err != nil {
		_ = db.Close()
		return nil, err
	}

	repos := &Repositories{DB: db}
	switch driver {
	case dbx.DriverPostgres:
		repos.Entry = entries.NewPostgresRepository(db)
		repos.PushLog = pushlog.NewPostgresRepository(db)
	default:
		repos.Entry = entries.NewSQLiteRepository(db)
		repos.PushLog = pushlog.NewSQLiteRepository(db)
	}
	return repos, nil
}
