package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"
)

var newFirebaseApp = firebase.NewApp

// FirebaseOptions configures a FirebaseStore. An empty CredentialsFile means
// application default credentials.
type FirebaseOptions struct {
	CredentialsFile string
	ProjectID       string
	DatabaseURL     string
	Root            string
}

// FirebaseStore keeps records as children of one Realtime Database node.
type FirebaseStore struct {
	root *db.Ref
}

func NewFirebaseStore(ctx context.Context, o FirebaseOptions) (*FirebaseStore, error) {
	var opts []option.ClientOption
	if o.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(o.CredentialsFile))
	}
	cfg := &firebase.Config{
		ProjectID:   o.ProjectID,
		DatabaseURL: o.DatabaseURL,
	}

	app, err := newFirebaseApp(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}
	dbc, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firebase Database client: %w", err)
	}
	return NewFirebaseStoreFromClient(dbc, o.Root), nil
}

// NewFirebaseStoreFromClient binds a store to root on an existing client.
func NewFirebaseStoreFromClient(c *db.Client, root string) *FirebaseStore {
	return &FirebaseStore{root: c.NewRef(root)}
}

// Append pushes rec as a new child, so the generated key and the record are
// created by one request, then stamps the id derived from the key. If the
// stamp cannot be written the child is removed again.
func (s *FirebaseStore) Append(ctx context.Context, rec Record) (string, error) {
	rec.ID = 0
	ref, err := s.root.Push(ctx, rec)
	if err != nil {
		return "", err
	}
	if ref.Key == "" {
		return "", nil
	}

	if err := ref.Update(ctx, map[string]any{"id": HashKey(ref.Key)}); err != nil {
		// The caller may already be gone; the cleanup must still run.
		_ = ref.Delete(context.WithoutCancel(ctx))
		return ref.Key, fmt.Errorf("failed to stamp id: %w", err)
	}
	return ref.Key, nil
}

func (s *FirebaseStore) Get(ctx context.Context, key string) (*Record, error) {
	var raw json.RawMessage
	if err := s.root.Child(key).Get(ctx, &raw); err != nil {
		return nil, err
	}
	rec, ok := decodeRecord(raw)
	if !ok {
		return nil, nil
	}
	return rec, nil
}

// List returns every child that holds a record. Children of any other shape
// (null, scalars, arrays) are skipped.
func (s *FirebaseStore) List(ctx context.Context) (map[string]Record, error) {
	var children map[string]json.RawMessage
	if err := s.root.Get(ctx, &children); err != nil {
		return nil, err
	}
	recs := make(map[string]Record, len(children))
	for key, raw := range children {
		if rec, ok := decodeRecord(raw); ok {
			recs[key] = *rec
		}
	}
	return recs, nil
}

// decodeRecord reports false for anything that is not a JSON object.
func decodeRecord(raw json.RawMessage) (*Record, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, false
	}
	return &rec, true
}

func (s *FirebaseStore) Remove(ctx context.Context, key string) error {
	return s.root.Child(key).Delete(ctx)
}

// Close is a no-op; the Database client holds no resources of its own.
func (s *FirebaseStore) Close() error { return nil }
