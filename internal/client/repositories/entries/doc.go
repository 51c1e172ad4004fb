// Package entries is the local entry store: the single journal_entries table
// and the repository through which the rest of the client reaches it.
//
// # Overview
//
// Repository is the one canonical interface for local persistence. Two
// implementations exist over a dbx.DBTX (either *sql.DB or *sql.Tx):
//
//   - SQLiteRepository: the embedded store, the default.
//   - PostgresRepository: the same table hosted in PostgreSQL.
//
// # Semantics
//
// Upsert inserts or replaces by primary key. An entry with ID 0 is inserted
// and receives the id assigned by the database. GetByID reports a missing row
// as common.ErrorNotFound. DeleteByID is idempotent: deleting an id that does
// not exist is not an error.
//
// Operations run one statement each and do not coordinate with one another;
// UpsertAll is the only multi-statement operation and runs in a transaction.
//
// Typical Usage
//
//	repo := entries.NewSQLiteRepository(db)
//	e := models.NewJournalEntry("Gym", "Ran 5k", time.Now())
//	_ = repo.Upsert(ctx, &e) // e.ID is now set
//	all, _ := repo.GetAll(ctx)
//	one, _ := repo.GetByID(ctx, e.ID)
//	_ = repo.DeleteByID(ctx, e.ID)
package entries
