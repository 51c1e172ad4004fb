package client

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/dailyjournal/internal/client/models"
	"github.com/dmitrijs2005/dailyjournal/internal/logging"
	"github.com/dmitrijs2005/dailyjournal/internal/taskx"
)

// Mirror implements Client over a DocumentStore.
type Mirror struct {
	store DocumentStore
	now   func() time.Time
	log   logging.Logger
}

type MirrorOption func(*Mirror)

// WithMirrorClock overrides the clock used for record timestamps.
func WithMirrorClock(now func() time.Time) MirrorOption {
	return func(m *Mirror) { m.now = now }
}

func WithMirrorLogger(l logging.Logger) MirrorOption {
	return func(m *Mirror) { m.log = l }
}

func NewMirror(store DocumentStore, opts ...MirrorOption) *Mirror {
	m := &Mirror{store: store, now: time.Now, log: logging.Nop()}
	for _, o := range opts {
		o(m)
	}
	return m
}

func isCtxErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Save appends e to the store with the current timestamp. The store generates
// the key and stamps the hashed id in the same call.
func (m *Mirror) Save(ctx context.Context, e models.JournalEntry) (string, error) {
	rec := Record{
		Title:     e.Title,
		Content:   e.Content,
		Date:      e.Date,
		Timestamp: m.now().UnixMilli(),
	}
	key, err := taskx.Run(ctx, func(ctx context.Context) (string, error) {
		return m.store.Append(ctx, rec)
	})
	switch {
	case err != nil && isCtxErr(err):
		return "", err
	case key == "" && err != nil:
		return "", fmt.Errorf("%w: %w", ErrKeyGeneration, err)
	case key == "":
		return "", ErrKeyGeneration
	case err != nil:
		return "", fmt.Errorf("failed to save entry %s: %w", key, err)
	}

	m.log.Debug(ctx, "entry mirrored", "key", key, "id", HashKey(key))
	return key, nil
}

// GetAll lists the mirror ordered by key.
func (m *Mirror) GetAll(ctx context.Context) ([]models.RemoteEntry, error) {
	recs, err := taskx.Run(ctx, m.store.List)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	keys := make([]string, 0, len(recs))
	for k := range recs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]models.RemoteEntry, 0, len(keys))
	for _, k := range keys {
		result = append(result, recs[k].toRemote(k))
	}
	return result, nil
}

func (m *Mirror) GetByID(ctx context.Context, key string) (*models.RemoteEntry, error) {
	rec, err := taskx.Run(ctx, func(ctx context.Context) (*Record, error) {
		return m.store.Get(ctx, key)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get entry %s: %w", key, err)
	}
	if rec == nil {
		return nil, nil
	}
	re := rec.toRemote(key)
	return &re, nil
}

func (m *Mirror) Delete(ctx context.Context, key string) error {
	_, err := taskx.Run(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, m.store.Remove(ctx, key)
	})
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", key, err)
	}
	return nil
}

func (m *Mirror) Close() error {
	return m.store.Close()
}
