package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/dailyjournal/internal/client/client"
	"github.com/dmitrijs2005/dailyjournal/internal/client/models"
	"github.com/dmitrijs2005/dailyjournal/internal/client/services"
	"github.com/dmitrijs2005/dailyjournal/internal/client/viewstate"
	"github.com/dmitrijs2005/dailyjournal/internal/dbx"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, time.March, 7, 9, 30, 0, 0, time.UTC)

// fakeMirror keeps saved entries in memory.
type fakeMirror struct {
	mu      sync.Mutex
	entries map[string]models.RemoteEntry
	saveErr error
	closed  bool
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{entries: map[string]models.RemoteEntry{}}
}

func (f *fakeMirror) Save(_ context.Context, e models.JournalEntry) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	key := "-N" + string(rune('a'+len(f.entries)))
	e.ID = client.HashKey(key)
	f.entries[key] = models.RemoteEntry{Key: key, Entry: e, Timestamp: today.UnixMilli()}
	return key, nil
}

func (f *fakeMirror) GetAll(context.Context) ([]models.RemoteEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.RemoteEntry, 0, len(f.entries))
	for _, r := range f.entries {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeMirror) GetByID(_ context.Context, key string) (*models.RemoteEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.entries[key]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeMirror) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, key)
	return nil
}

func (f *fakeMirror) Close() error { f.closed = true; return nil }

type fakeSyncer struct {
	services.SyncService
	keys []string
	err  error
	all  bool
}

func (s *fakeSyncer) PushAll(context.Context) ([]string, error) {
	s.all = true
	return s.keys, s.err
}

func (s *fakeSyncer) PushPending(context.Context) ([]string, error) { return s.keys, s.err }

type fakeExporter struct {
	key string
	err error
}

func (e fakeExporter) Export(context.Context) (string, error) { return e.key, e.err }

type testEnv struct {
	app    *App
	out    *bytes.Buffer
	mirror *fakeMirror
	repos  *client.Repositories
}

func newTestApp(t *testing.T, input string, mutate func(*Deps)) *testEnv {
	t.Helper()

	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	repos, err := client.InitDatabase(context.Background(), dbx.DriverSQLite, filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	m := newFakeMirror()
	h := viewstate.NewHolder(repos.Entry,
		viewstate.WithMirror(m),
		viewstate.WithPushLog(repos.PushLog),
		viewstate.WithClock(func() time.Time { return today }),
	)

	d := Deps{Holder: h, Mirror: m, PushLog: repos.PushLog}
	if mutate != nil {
		mutate(&d)
	}

	out := &bytes.Buffer{}
	return &testEnv{
		app:    NewApp(d, strings.NewReader(input), out),
		out:    out,
		mirror: m,
		repos:  repos,
	}
}

func TestApp_AddListShowDelete(t *testing.T) {
	env := newTestApp(t, "", nil)
	ctx := context.Background()

	require.NoError(t, env.app.Add(ctx, "Monday", "Rained all day."))
	assert.Contains(t, env.out.String(), "Saved entry #1")

	env.out.Reset()
	require.NoError(t, env.app.List(ctx))
	assert.Contains(t, env.out.String(), "ID")
	assert.Contains(t, env.out.String(), "03/07/2026")
	assert.Contains(t, env.out.String(), "Monday")

	env.out.Reset()
	require.NoError(t, env.app.Show(ctx, "1"))
	assert.Contains(t, env.out.String(), "Rained all day.")

	env.out.Reset()
	require.NoError(t, env.app.Delete(ctx, "1"))
	assert.Contains(t, env.out.String(), "Deleted entry #1")

	env.out.Reset()
	require.NoError(t, env.app.List(ctx))
	assert.Contains(t, env.out.String(), "No journal entries yet.")
}

func TestApp_AddRecordsPush(t *testing.T) {
	env := newTestApp(t, "", nil)
	ctx := context.Background()

	require.NoError(t, env.app.Add(ctx, "Monday", "Rained all day."))

	keys, err := env.repos.PushLog.Keys(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"-Na"}, keys)
}

func TestApp_AddMirrorFailureWarns(t *testing.T) {
	env := newTestApp(t, "", nil)
	env.mirror.saveErr = client.ErrUnavailable

	require.NoError(t, env.app.Add(context.Background(), "Monday", "Rained all day."))
	out := env.out.String()
	assert.Contains(t, out, "Saved entry #1")
	assert.Contains(t, out, "Failed to sync journal entry: ")
	assert.Empty(t, env.app.Holder.State().ErrorMessage)
}

func TestApp_AddValidationFails(t *testing.T) {
	env := newTestApp(t, "", nil)

	err := env.app.Add(context.Background(), "", "body")
	require.Error(t, err)
	assert.Contains(t, env.out.String(), "Failed to save journal entry: ")
}

func TestApp_AddInteractiveReadsPrompts(t *testing.T) {
	env := newTestApp(t, "Tuesday\nline one\nline two\n\n", nil)
	ctx := context.Background()

	require.NoError(t, env.app.AddInteractive(ctx))

	e, err := env.repos.Entry.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Tuesday", e.Title)
	assert.Equal(t, "line one\nline two", e.Content)
	// Input is not a terminal, so no prompts are printed.
	assert.NotContains(t, env.out.String(), "Title")
}

func TestApp_ShowErrors(t *testing.T) {
	env := newTestApp(t, "", nil)
	ctx := context.Background()

	require.Error(t, env.app.Show(ctx, "abc"))
	assert.Contains(t, env.out.String(), `invalid entry id "abc"`)

	env.out.Reset()
	require.Error(t, env.app.Show(ctx, "42"))
	assert.Contains(t, env.out.String(), "Failed to load journal entry: ")
}

func TestApp_Sync(t *testing.T) {
	s := &fakeSyncer{keys: []string{"-Na", "-Nb"}}
	env := newTestApp(t, "", func(d *Deps) { d.Syncer = s })
	ctx := context.Background()

	require.NoError(t, env.app.Sync(ctx, false))
	assert.False(t, s.all)
	assert.Contains(t, env.out.String(), "Pushed 2 entries")

	require.NoError(t, env.app.Sync(ctx, true))
	assert.True(t, s.all)

	s.keys, s.err = nil, nil
	env.out.Reset()
	require.NoError(t, env.app.Sync(ctx, false))
	assert.Contains(t, env.out.String(), "Nothing to push")

	s.keys, s.err = []string{"-Na"}, errors.New("boom")
	env.out.Reset()
	require.Error(t, env.app.Sync(ctx, false))
	assert.Contains(t, env.out.String(), "Pushed 1 entries")
	assert.Contains(t, env.out.String(), "Failed to sync journal entries: boom")
}

func TestApp_NotConfigured(t *testing.T) {
	env := newTestApp(t, "", func(d *Deps) { d.Mirror = nil })
	ctx := context.Background()

	assert.ErrorIs(t, env.app.Sync(ctx, false), errNoMirror)
	assert.ErrorIs(t, env.app.Watch(ctx), errNoMirror)
	assert.ErrorIs(t, env.app.RemoteList(ctx), errNoMirror)
	assert.ErrorIs(t, env.app.RemoteShow(ctx, "k"), errNoMirror)
	assert.ErrorIs(t, env.app.RemoteDelete(ctx, "k"), errNoMirror)
	assert.Error(t, env.app.Export(ctx))
	assert.NoError(t, env.app.Close())
}

func TestApp_Export(t *testing.T) {
	env := newTestApp(t, "", func(d *Deps) { d.Exporter = fakeExporter{key: "journal/2026/03/07/x.json"} })
	require.NoError(t, env.app.Export(context.Background()))
	assert.Contains(t, env.out.String(), "Exported to journal/2026/03/07/x.json")

	env = newTestApp(t, "", func(d *Deps) { d.Exporter = fakeExporter{err: errors.New("no bucket")} })
	require.Error(t, env.app.Export(context.Background()))
	assert.Contains(t, env.out.String(), "Failed to export journal: no bucket")
}

func writeSnapshot(t *testing.T, list []models.JournalEntry) string {
	t.Helper()
	data, err := json.Marshal(services.Snapshot{ExportedAt: today, Entries: list})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestApp_ImportRestoresSnapshot(t *testing.T) {
	env := newTestApp(t, "", nil)
	ctx := context.Background()

	path := writeSnapshot(t, []models.JournalEntry{
		{ID: 3, Title: "Monday", Content: "Rained all day.", Date: "03/02/2026"},
		{ID: 9, Title: "Tuesday", Content: "Sunny.", Date: "03/03/2026"},
	})
	require.NoError(t, env.app.Import(ctx, path))
	assert.Contains(t, env.out.String(), "Imported 2 entries")

	e, err := env.repos.Entry.GetByID(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "Tuesday", e.Title)

	require.NoError(t, env.app.Add(ctx, "Wednesday", "Windy."))
	assert.Contains(t, env.out.String(), "Saved entry #10")
}

func TestApp_ImportFromInput(t *testing.T) {
	env := newTestApp(t, `{"exported_at":"2026-03-07T09:30:00Z","entries":[{"title":"Monday","content":"Rained all day.","date":"03/02/2026"}]}`, nil)

	require.NoError(t, env.app.Import(context.Background(), "-"))
	assert.Contains(t, env.out.String(), "Imported 1 entries")

	list, err := env.repos.Entry.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ID)
}

func TestApp_ImportErrors(t *testing.T) {
	env := newTestApp(t, "not json", nil)
	ctx := context.Background()

	require.Error(t, env.app.Import(ctx, filepath.Join(t.TempDir(), "missing.json")))
	assert.Contains(t, env.out.String(), "Failed to read snapshot")

	env.out.Reset()
	require.Error(t, env.app.Import(ctx, "-"))
	assert.Contains(t, env.out.String(), "invalid snapshot")

	env.out.Reset()
	path := writeSnapshot(t, []models.JournalEntry{
		{Title: "Monday", Content: "Rained all day."},
		{Title: "Tuesday"},
	})
	require.Error(t, env.app.Import(ctx, path))
	assert.Contains(t, env.out.String(), "Failed to import journal entries")

	list, err := env.repos.Entry.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestApp_RemoteCommands(t *testing.T) {
	env := newTestApp(t, "", nil)
	ctx := context.Background()

	require.NoError(t, env.app.RemoteList(ctx))
	assert.Contains(t, env.out.String(), "The remote mirror is empty.")

	require.NoError(t, env.app.Add(ctx, "Monday", "Rained all day."))

	env.out.Reset()
	require.NoError(t, env.app.RemoteList(ctx))
	assert.Contains(t, env.out.String(), "-Na")
	assert.Contains(t, env.out.String(), "Monday")

	env.out.Reset()
	require.NoError(t, env.app.RemoteShow(ctx, "-Na"))
	assert.Contains(t, env.out.String(), "Rained all day.")

	env.out.Reset()
	require.NoError(t, env.app.RemoteShow(ctx, "-Nz"))
	assert.Contains(t, env.out.String(), "No remote entry -Nz")

	require.NoError(t, env.app.RemoteDelete(ctx, "-Na"))
	keys, err := env.repos.PushLog.Keys(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, env.app.Close())
	assert.True(t, env.mirror.closed)
}

func TestApp_CommandTimeout(t *testing.T) {
	env := newTestApp(t, "", func(d *Deps) { d.CommandTimeout = time.Minute })

	ctx, cancel := env.app.withTimeout(context.Background())
	defer cancel()
	_, ok := ctx.Deadline()
	assert.True(t, ok)

	env.app.CommandTimeout = 0
	ctx2, cancel2 := env.app.withTimeout(context.Background())
	defer cancel2()
	_, ok = ctx2.Deadline()
	assert.False(t, ok)
}
