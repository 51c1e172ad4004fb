package client

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/dailyjournal/internal/client/models"
)

// fakeStore is an in-memory DocumentStore with injectable failures.
type fakeStore struct {
	mu      sync.Mutex
	recs    map[string]Record
	nextKey int

	keyErr   error
	emptyKey bool
	putErr   error
	getErr   error
	listErr  error
	rmErr    error

	// block, when set, makes every call wait for the context.
	block  bool
	closed bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{recs: map[string]Record{}}
}

func (f *fakeStore) wait(ctx context.Context) error {
	if !f.block {
		return nil
	}
	<-ctx.Done()
	return ctx.Err()
}

// Append fails with keyErr before a key exists, returns no key when emptyKey
// is set, and fails with putErr after the key was generated.
func (f *fakeStore) Append(ctx context.Context, rec Record) (string, error) {
	if err := f.wait(ctx); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.keyErr != nil {
		return "", f.keyErr
	}
	if f.emptyKey {
		return "", nil
	}
	f.nextKey++
	key := "-N" + string(rune('a'+f.nextKey-1))
	if f.putErr != nil {
		return key, f.putErr
	}
	rec.ID = HashKey(key)
	f.recs[key] = rec
	return key, nil
}

func (f *fakeStore) Get(ctx context.Context, key string) (*Record, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	rec, ok := f.recs[key]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeStore) List(ctx context.Context) (map[string]Record, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make(map[string]Record, len(f.recs))
	for k, v := range f.recs {
		out[k] = v
	}
	return out, nil
}

func (f *fakeStore) Remove(ctx context.Context, key string) error {
	if err := f.wait(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rmErr != nil {
		return f.rmErr
	}
	delete(f.recs, key)
	return nil
}

func (f *fakeStore) Close() error {
	f.closed = true
	return nil
}

var errBackend = errors.New("backend down")

func journalFixture() models.JournalEntry {
	return models.JournalEntry{Title: "Gym", Content: "Ran 5k", Date: "03/07/2026"}
}
