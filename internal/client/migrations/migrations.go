// Package migrations embeds the goose migrations for the local entry store,
// one directory per SQL dialect.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// SQLite returns the migrations for the embedded sqlite store.
func SQLite() fs.FS {
	sub, _ := fs.Sub(Migrations, "sqlite")
	return sub
}

// Postgres returns the migrations for the postgres store.
func Postgres() fs.FS {
	sub, _ := fs.Sub(Migrations, "postgres")
	return sub
}
