package entries

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/dailyjournal/internal/client/models"
	"github.com/dmitrijs2005/dailyjournal/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// one connection, otherwise every pooled connection sees its own empty :memory: db
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE journal_entries (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  content TEXT NOT NULL,
  date TEXT NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestUpsert_InsertAssignsID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	e := &models.JournalEntry{Title: "Gym", Content: "Ran 5k", Date: "03/07/2026"}
	require.NoError(t, r.Upsert(ctx, e))
	assert.NotZero(t, e.ID)

	got, err := r.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, *e, *got)

	e2 := &models.JournalEntry{Title: "Read", Content: "Two chapters", Date: "03/07/2026"}
	require.NoError(t, r.Upsert(ctx, e2))
	assert.Greater(t, e2.ID, e.ID)
}

func TestUpsert_ReplacesByID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	e := &models.JournalEntry{Title: "Gym", Content: "Ran 5k", Date: "03/07/2026"}
	require.NoError(t, r.Upsert(ctx, e))

	upd := &models.JournalEntry{ID: e.ID, Title: "Gym", Content: "Ran 10k", Date: "03/08/2026"}
	require.NoError(t, r.Upsert(ctx, upd))

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, *upd, all[0])
}

func TestUpsert_ExplicitIDInsertsWhenMissing(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	e := &models.JournalEntry{ID: 42, Title: "t", Content: "c", Date: "01/01/2026"}
	require.NoError(t, r.Upsert(ctx, e))

	got, err := r.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)
}

func TestGetAll_EmptyAndOrdered(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	for _, id := range []int64{7, 3, 5} {
		require.NoError(t, r.Upsert(ctx, &models.JournalEntry{ID: id, Title: "t", Content: "c", Date: "01/01/2026"}))
	}

	all, err = r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{3, 5, 7}, []int64{all[0].ID, all[1].ID, all[2].ID})
}

func TestGetByID_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	got, err := r.GetByID(context.Background(), 99)
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Nil(t, got)
}

func TestDeleteByID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	e := &models.JournalEntry{Title: "t", Content: "c", Date: "01/01/2026"}
	require.NoError(t, r.Upsert(ctx, e))

	require.NoError(t, r.DeleteByID(ctx, e.ID))
	_, err := r.GetByID(ctx, e.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)

	// deleting again is a no-op
	require.NoError(t, r.DeleteByID(ctx, e.ID))
	require.NoError(t, r.DeleteByID(ctx, 12345))
}

func TestUpsertAll_AssignsIDsInPlace(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	list := []models.JournalEntry{
		{Title: "a", Content: "1", Date: "01/01/2026"},
		{Title: "b", Content: "2", Date: "01/02/2026"},
		{ID: 100, Title: "c", Content: "3", Date: "01/03/2026"},
	}
	require.NoError(t, r.UpsertAll(ctx, list))

	assert.NotZero(t, list[0].ID)
	assert.NotZero(t, list[1].ID)
	assert.Equal(t, int64(100), list[2].ID)

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpsertAll_RollsBackOnError(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := db.Exec(`CREATE TRIGGER reject_bad BEFORE INSERT ON journal_entries
WHEN NEW.title = 'bad' BEGIN SELECT RAISE(ABORT, 'rejected'); END;`)
	require.NoError(t, err)

	list := []models.JournalEntry{
		{Title: "good", Content: "1", Date: "01/01/2026"},
		{Title: "bad", Content: "2", Date: "01/02/2026"},
	}
	require.Error(t, r.UpsertAll(ctx, list))

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSQLite_ErrorsWithoutTable(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.Error(t, r.Upsert(ctx, &models.JournalEntry{Title: "t", Content: "c"}))
	require.Error(t, r.Upsert(ctx, &models.JournalEntry{ID: 1, Title: "t", Content: "c"}))
	_, err = r.GetAll(ctx)
	require.Error(t, err)
	_, err = r.GetByID(ctx, 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
	require.Error(t, r.DeleteByID(ctx, 1))
}

func TestRepositoriesSatisfyInterface(t *testing.T) {
	var _ Repository = (*SQLiteRepository)(nil)
	var _ Repository = (*PostgresRepository)(nil)
}
