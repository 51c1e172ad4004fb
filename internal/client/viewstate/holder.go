// Package viewstate holds the journal's display state: the loaded entries, the
// selected entry and the loading/error flags, published through a Cell.
//
// Holder operations are independent units of work. They are not serialized
// against each other; concurrent operations race on the store and the last
// write to a state field wins.
package viewstate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dailyjournal/internal/client/client"
	"github.com/dmitrijs2005/dailyjournal/internal/client/models"
	"github.com/dmitrijs2005/dailyjournal/internal/client/repositories/entries"
	"github.com/dmitrijs2005/dailyjournal/internal/client/repositories/pushlog"
	"github.com/dmitrijs2005/dailyjournal/internal/common"
	"github.com/dmitrijs2005/dailyjournal/internal/logging"
	"github.com/go-playground/validator/v10"
)

// ErrSync reports that an entry was saved locally but could not be mirrored.
var ErrSync = errors.New("entry saved locally but not mirrored")

// User-facing error prefixes.
const (
	msgLoadAll = "Failed to load journal entries: "
	msgLoadOne = "Failed to load journal entry: "
	msgSave    = "Failed to save journal entry: "
	msgSync    = "Failed to sync journal entry: "
	msgDelete  = "Failed to delete journal entry: "
	msgImport  = "Failed to import journal entries: "
)

// State is a snapshot of everything a view renders. Entries is replaced
// wholesale on every load and never mutated in place.
type State struct {
	Entries      []models.JournalEntry
	Selected     *models.JournalEntry
	IsLoading    bool
	ErrorMessage string
}

type Holder struct {
	repo     entries.Repository
	mirror   client.Client
	pushes   pushlog.Repository
	log      logging.Logger
	now      func() time.Time
	validate *validator.Validate
	state    *Cell[State]
}

type Option func(*Holder)

// WithMirror makes Add also save new entries to the remote mirror.
func WithMirror(c client.Client) Option {
	return func(h *Holder) { h.mirror = c }
}

// WithPushLog records the mirror key of every entry Add pushes.
func WithPushLog(r pushlog.Repository) Option {
	return func(h *Holder) { h.pushes = r }
}

func WithLogger(l logging.Logger) Option {
	return func(h *Holder) { h.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(h *Holder) { h.now = now }
}

func NewHolder(repo entries.Repository, opts ...Option) *Holder {
	h := &Holder{
		repo:     repo,
		log:      logging.Nop(),
		now:      time.Now,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		state:    NewCell(State{Entries: []models.JournalEntry{}}),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// State returns the current snapshot.
func (h *Holder) State() State {
	return h.state.Get()
}

// Subscribe calls fn with every new state.
func (h *Holder) Subscribe(fn func(State)) (unsubscribe func()) {
	return h.state.Subscribe(fn)
}

func (h *Holder) begin() {
	h.state.Update(func(s State) State {
		s.IsLoading = true
		s.ErrorMessage = ""
		return s
	})
}

func (h *Holder) fail(prefix string, err error) {
	h.state.Update(func(s State) State {
		s.IsLoading = false
		s.ErrorMessage = prefix + err.Error()
		return s
	})
}

func (h *Holder) done() {
	h.state.Update(func(s State) State {
		s.IsLoading = false
		return s
	})
}

// Load replaces Entries with the full contents of the entry store.
func (h *Holder) Load(ctx context.Context) error {
	h.begin()

	list, err := h.repo.GetAll(ctx)
	if err != nil {
		h.log.Error(ctx, "error loading journal entries", "error", err)
		h.fail(msgLoadAll, err)
		return err
	}

	h.state.Update(func(s State) State {
		s.Entries = list
		s.IsLoading = false
		return s
	})
	h.log.Debug(ctx, "loaded journal entries", "count", len(list))
	return nil
}

// Add stores a new entry dated today and, when a mirror is configured, saves
// it there too. The entry list is not touched; call Load to see the entry.
//
// A mirror failure leaves the local entry in place: the returned entry is
// valid and the error wraps ErrSync.
func (h *Holder) Add(ctx context.Context, title, content string) (models.JournalEntry, error) {
	h.begin()

	e := models.NewJournalEntry(title, content, h.now())
	if err := h.validate.Struct(e); err != nil {
		err = fmt.Errorf("%w: %w", common.ErrorValidation, err)
		h.fail(msgSave, err)
		return models.JournalEntry{}, err
	}

	if err := h.repo.Upsert(ctx, &e); err != nil {
		h.log.Error(ctx, "error saving journal entry", "error", err)
		h.fail(msgSave, err)
		return models.JournalEntry{}, err
	}
	h.log.Info(ctx, "saved journal entry", "id", e.ID)

	if h.mirror != nil {
		key, err := h.mirror.Save(ctx, e)
		if err != nil {
			h.log.Warn(ctx, "error mirroring journal entry", "id", e.ID, "error", err)
			h.fail(msgSync, err)
			return e, fmt.Errorf("%w: %w", ErrSync, err)
		}
		h.log.Debug(ctx, "mirrored journal entry", "id", e.ID, "key", key)
		if h.pushes != nil {
			if err := h.pushes.Record(ctx, e.ID, key, h.now()); err != nil {
				h.log.Warn(ctx, "error recording push", "key", key, "error", err)
			}
		}
	}

	h.done()
	return e, nil
}

// Select loads one entry into Selected. A missing id clears the selection.
func (h *Holder) Select(ctx context.Context, id int64) error {
	h.begin()

	e, err := h.repo.GetByID(ctx, id)
	if err != nil {
		h.log.Error(ctx, "error loading journal entry", "id", id, "error", err)
		h.state.Update(func(s State) State {
			if errors.Is(err, common.ErrorNotFound) {
				s.Selected = nil
			}
			s.IsLoading = false
			s.ErrorMessage = msgLoadOne + err.Error()
			return s
		})
		return err
	}

	h.state.Update(func(s State) State {
		s.Selected = e
		s.IsLoading = false
		return s
	})
	return nil
}

// Delete removes an entry from the store and reloads the list.
func (h *Holder) Delete(ctx context.Context, id int64) error {
	h.begin()

	if err := h.repo.DeleteByID(ctx, id); err != nil {
		h.log.Error(ctx, "error deleting journal entry", "id", id, "error", err)
		h.fail(msgDelete, err)
		return err
	}
	h.log.Info(ctx, "deleted journal entry", "id", id)

	h.state.Update(func(s State) State {
		if s.Selected != nil && s.Selected.ID == id {
			s.Selected = nil
		}
		return s
	})
	return h.Load(ctx)
}

// Import upserts list into the entry store in one transaction and reloads.
// Entries with an id replace the stored entry with that id; the rest get new
// ids. Nothing is stored if any entry is invalid or any write fails.
func (h *Holder) Import(ctx context.Context, list []models.JournalEntry) error {
	h.begin()

	for i := range list {
		if err := h.validate.Struct(list[i]); err != nil {
			err = fmt.Errorf("%w: entry %d: %w", common.ErrorValidation, i+1, err)
			h.fail(msgImport, err)
			return err
		}
	}

	if err := h.repo.UpsertAll(ctx, list); err != nil {
		h.log.Error(ctx, "error importing journal entries", "error", err)
		h.fail(msgImport, err)
		return err
	}
	h.log.Info(ctx, "imported journal entries", "count", len(list))
	return h.Load(ctx)
}

func (h *Holder) ClearError() {
	h.state.Update(func(s State) State {
		s.ErrorMessage = ""
		return s
	})
}

func (h *Holder) ClearSelection() {
	h.state.Update(func(s State) State {
		s.Selected = nil
		return s
	})
}
