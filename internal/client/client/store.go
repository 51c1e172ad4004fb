package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/dailyjournal/internal/common"
)

// DocumentStore is a keyed document tree holding Records. Each method blocks
// until the backend answers.
type DocumentStore interface {
	// Append stores rec under a freshly generated, roughly chronological key
	// and returns the key. The stored record's id is HashKey(key).
	//
	// On failure an empty key means no key was generated and nothing was
	// written; a non-empty key means the key exists but the record could not
	// be completed.
	Append(ctx context.Context, rec Record) (string, error)
	// Get returns nil, nil when key holds nothing.
	Get(ctx context.Context, key string) (*Record, error)
	List(ctx context.Context) (map[string]Record, error)
	// Remove deletes key; removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	Close() error
}

// Supported remote backends.
const (
	BackendNone     = "none"
	BackendFirebase = "firebase"
	BackendCouchDB  = "couchdb"
	BackendRedis    = "redis"
)

// StoreOptions carries everything any backend may need. Only the fields of
// the selected backend are read.
type StoreOptions struct {
	Backend string
	Root    string

	FirebaseCredentialsFile string
	FirebaseProjectID       string
	FirebaseDatabaseURL     string

	CouchURL string
	CouchDB  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// NewStore builds the DocumentStore selected by opts.Backend. It returns
// nil, nil for BackendNone (or an empty backend).
func NewStore(ctx context.Context, opts StoreOptions) (DocumentStore, error) {
	root := opts.Root
	if root == "" {
		root = common.DefaultRemoteRoot
	}

	var (
		s   DocumentStore
		err error
	)
	switch strings.ToLower(opts.Backend) {
	case "", BackendNone:
		return nil, nil
	case BackendFirebase:
		s, err = NewFirebaseStore(ctx, FirebaseOptions{
			CredentialsFile: opts.FirebaseCredentialsFile,
			ProjectID:       opts.FirebaseProjectID,
			DatabaseURL:     opts.FirebaseDatabaseURL,
			Root:            root,
		})
	case BackendCouchDB:
		dbName := opts.CouchDB
		if dbName == "" {
			dbName = root
		}
		s, err = NewCouchStore(ctx, opts.CouchURL, dbName)
	case BackendRedis:
		s, err = NewRedisStore(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB, root)
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrorUnknownBackend, opts.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, opts.Backend, err)
	}
	return s, nil
}
