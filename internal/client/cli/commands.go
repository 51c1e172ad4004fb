package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dmitrijs2005/dailyjournal/internal/client/services"
	"github.com/dmitrijs2005/dailyjournal/internal/client/viewstate"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid entry id %q", s)
	}
	return id, nil
}

// List loads all entries and prints them as a table.
func (a *App) List(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.Holder.Load(ctx); err != nil {
		a.fail("%s", a.Holder.State().ErrorMessage)
		return err
	}
	a.renderEntries(a.Holder.State().Entries)
	return nil
}

// Add saves a new entry. A mirror failure is reported as a warning; the
// local entry stays saved and no error is returned.
func (a *App) Add(ctx context.Context, title, content string) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	e, err := a.Holder.Add(ctx, title, content)
	switch {
	case errors.Is(err, viewstate.ErrSync):
		a.ok("Saved entry #%d", e.ID)
		a.warn("%s", a.Holder.State().ErrorMessage)
		a.Holder.ClearError()
		return nil
	case err != nil:
		a.fail("%s", a.Holder.State().ErrorMessage)
		return err
	}
	a.ok("Saved entry #%d", e.ID)
	return nil
}

// AddInteractive prompts for a title and a multi-line body, then calls Add.
func (a *App) AddInteractive(ctx context.Context) error {
	title, err := a.prompt("Title")
	if err != nil {
		return err
	}
	content, err := a.promptMultiline("Entry")
	if err != nil {
		return err
	}
	return a.Add(ctx, title, content)
}

// Show prints a single entry.
func (a *App) Show(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		a.fail("%s", err)
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.Holder.Select(ctx, id); err != nil {
		a.fail("%s", a.Holder.State().ErrorMessage)
		return err
	}
	if sel := a.Holder.State().Selected; sel != nil {
		a.renderEntry(*sel)
	}
	return nil
}

// Delete removes an entry locally. The mirror is not touched.
func (a *App) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		a.fail("%s", err)
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.Holder.Delete(ctx, id); err != nil {
		a.fail("%s", a.Holder.State().ErrorMessage)
		return err
	}
	a.ok("Deleted entry #%d", id)
	return nil
}

// Sync pushes local entries to the mirror; all=false skips entries already
// recorded in the push log.
func (a *App) Sync(ctx context.Context, all bool) error {
	if a.Syncer == nil {
		a.fail("%s", errNoMirror)
		return errNoMirror
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	push := a.Syncer.PushPending
	if all {
		push = a.Syncer.PushAll
	}
	keys, err := push(ctx)
	if len(keys) > 0 {
		a.ok("Pushed %d entries", len(keys))
	} else if err == nil {
		a.ok("Nothing to push")
	}
	if err != nil {
		a.fail("Failed to sync journal entries: %s", err)
		return err
	}
	return nil
}

// Watch runs scheduled pushes until ctx is done.
func (a *App) Watch(ctx context.Context) error {
	if a.Syncer == nil {
		a.fail("%s", errNoMirror)
		return errNoMirror
	}
	a.ok("Pushing on schedule %q, press Ctrl+C to stop", a.SyncSchedule)
	return a.Syncer.Schedule(ctx, a.SyncSchedule)
}

// Export uploads a JSON snapshot of all entries.
func (a *App) Export(ctx context.Context) error {
	if a.Exporter == nil {
		err := errors.New("export is not configured")
		a.fail("%s", err)
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	key, err := a.Exporter.Export(ctx)
	if err != nil {
		a.fail("Failed to export journal: %s", err)
		return err
	}
	a.ok("Exported to %s", key)
	return nil
}

// Import restores entries from a snapshot written by Export. path "-" reads
// the snapshot from the App's input.
func (a *App) Import(ctx context.Context, path string) error {
	snap, err := a.readSnapshot(path)
	if err != nil {
		a.fail("Failed to read snapshot: %s", err)
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.Holder.Import(ctx, snap.Entries); err != nil {
		a.fail("%s", a.Holder.State().ErrorMessage)
		return err
	}
	a.ok("Imported %d entries", len(snap.Entries))
	return nil
}

func (a *App) readSnapshot(path string) (services.Snapshot, error) {
	var r io.Reader = a.reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return services.Snapshot{}, err
		}
		defer f.Close()
		r = f
	}

	var snap services.Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return services.Snapshot{}, fmt.Errorf("invalid snapshot: %w", err)
	}
	return snap, nil
}

// RemoteList prints the mirror's contents.
func (a *App) RemoteList(ctx context.Context) error {
	if a.Mirror == nil {
		a.fail("%s", errNoMirror)
		return errNoMirror
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	list, err := a.Mirror.GetAll(ctx)
	if err != nil {
		a.fail("Failed to load remote entries: %s", err)
		return err
	}
	a.renderRemote(list)
	return nil
}

// RemoteShow prints one mirrored entry.
func (a *App) RemoteShow(ctx context.Context, key string) error {
	if a.Mirror == nil {
		a.fail("%s", errNoMirror)
		return errNoMirror
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	r, err := a.Mirror.GetByID(ctx, key)
	if err != nil {
		a.fail("Failed to load remote entry: %s", err)
		return err
	}
	if r == nil {
		a.warn("No remote entry %s", key)
		return nil
	}
	a.renderEntry(r.Entry)
	return nil
}

// RemoteDelete removes a mirrored entry and forgets it in the push log.
func (a *App) RemoteDelete(ctx context.Context, key string) error {
	if a.Mirror == nil {
		a.fail("%s", errNoMirror)
		return errNoMirror
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.Mirror.Delete(ctx, key); err != nil {
		a.fail("Failed to delete remote entry: %s", err)
		return err
	}
	if a.PushLog != nil {
		if err := a.PushLog.Forget(ctx, key); err != nil {
			a.Logger.Warn(ctx, "error updating push log", "key", key, "error", err)
		}
	}
	a.ok("Deleted remote entry %s", key)
	return nil
}
