// Package client contains the client-side building blocks for the journal's
// storage: bootstrapping the local entry store and talking to the remote
// mirror.
//
// # Overview
//
// The package provides:
//  1. A backend-agnostic contract for the remote mirror (see the Client
//     interface): Save, GetAll, GetByID, Delete.
//  2. Mirror, the implementation of Client over a DocumentStore. Every call
//     is started as a taskx.Task and awaited, so a cancelled caller detaches
//     from the pending operation and is never resumed twice.
//  3. DocumentStore backends for Firebase Realtime Database, CouchDB and Redis.
//  4. Local persistence bootstrap (InitDatabase, RunMigrations), opening the
//     configured SQL driver and applying the embedded goose migrations.
//
// # Error Handling
//
// Conditions callers may want to branch on are exposed as sentinel errors
// matched with errors.Is: ErrKeyGeneration, ErrUnavailable.
//
// Concurrency & Contexts
//
// Mirror and the stores are safe for concurrent use. All operations accept a
// context.Context; no timeouts are imposed here.
//
// See Also
//
//   - Interface:  Client, DocumentStore
//   - Mirror:     NewMirror, HashKey
//   - Backends:   NewFirebaseStore, NewCouchStore, NewRedisStore, NewStore
//   - DB helpers: InitDatabase, RunMigrations
package client
