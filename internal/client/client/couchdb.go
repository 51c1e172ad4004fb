package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-kivik/kivik/v4"
	_ "github.com/go-kivik/kivik/v4/couchdb" // CouchDB driver
	"github.com/google/uuid"
)

// CouchStore keeps one CouchDB document per record, keyed by a UUIDv7.
type CouchStore struct {
	client *kivik.Client
	db     *kivik.DB
}

type couchDoc struct {
	ID  string `json:"_id,omitempty"`
	Rev string `json:"_rev,omitempty"`
	Record
}

// NewCouchStore connects to url and makes sure dbName exists.
func NewCouchStore(ctx context.Context, url, dbName string) (*CouchStore, error) {
	client, err := kivik.New("couch", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to CouchDB: %w", err)
	}

	exists, err := client.DBExists(ctx, dbName)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to check database: %w", err)
	}
	if !exists {
		if err := client.CreateDB(ctx, dbName); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to create database: %w", err)
		}
	}

	return &CouchStore{client: client, db: client.DB(dbName)}, nil
}

// Append writes rec as a new document keyed by a UUIDv7.
func (s *CouchStore) Append(ctx context.Context, rec Record) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	key := id.String()
	rec.ID = HashKey(key)
	return key, s.put(ctx, key, rec)
}

func (s *CouchStore) put(ctx context.Context, key string, rec Record) error {
	doc := couchDoc{ID: key, Record: rec}

	rev, err := s.db.GetRev(ctx, key)
	switch {
	case err == nil:
		doc.Rev = rev
	case kivik.HTTPStatus(err) != http.StatusNotFound:
		return fmt.Errorf("failed to read revision: %w", err)
	}

	if _, err := s.db.Put(ctx, key, doc); err != nil {
		return fmt.Errorf("failed to put document: %w", err)
	}
	return nil
}

func (s *CouchStore) Get(ctx context.Context, key string) (*Record, error) {
	var doc couchDoc
	if err := s.db.Get(ctx, key).ScanDoc(&doc); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &doc.Record, nil
}

func (s *CouchStore) List(ctx context.Context) (map[string]Record, error) {
	rows := s.db.AllDocs(ctx, kivik.Param("include_docs", true))
	defer rows.Close()

	result := make(map[string]Record)
	for rows.Next() {
		id, err := rows.ID()
		if err != nil {
			return nil, fmt.Errorf("failed to read document id: %w", err)
		}
		if strings.HasPrefix(id, "_design/") {
			continue
		}
		var doc couchDoc
		if err := rows.ScanDoc(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		result[id] = doc.Record
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return result, nil
}

func (s *CouchStore) Remove(ctx context.Context, key string) error {
	rev, err := s.db.GetRev(ctx, key)
	if err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return nil
		}
		return fmt.Errorf("failed to read revision: %w", err)
	}
	if _, err := s.db.Delete(ctx, key, rev); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func (s *CouchStore) Close() error {
	return s.client.Close()
}
