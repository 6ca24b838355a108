// Package store defines the document-store contract the credential vault is
// built on, together with its concrete adapters (MongoDB, PostgreSQL/JSONB,
// in-memory).
//
// The contract is deliberately small: exact-match filters over named
// collections, single-document reads and writes, and bulk deletes. The vault
// uses two collections, `users` and `passwords`. Atomicity is per document —
// the store offers no cross-document transactions, and none of the adapters
// simulate them.
package store

import "context"

// Document is a schemaless record as stored in a collection.
// Values are restricted to what survives a JSON/BSON round trip
// (strings, numbers, booleans, timestamps, nested maps and slices).
type Document map[string]any

// Filter is an exact-match mapping of field name to expected value.
// All pairs must match for a document to be selected.
type Filter map[string]any

// Names of the collections used by the vault.
const (
	CollectionUsers     = "users"
	CollectionPasswords = "passwords"
)

// DocumentStore is the data-access contract all vault services depend on.
//
// Implementations must be safe for concurrent use. Connectivity failures are
// wrapped in [ErrStoreUnavailable]; an empty single-document lookup yields
// [ErrDocumentNotFound].
type DocumentStore interface {
	// FindOne returns the first document in collection matching filter,
	// or ErrDocumentNotFound if no document matches.
	FindOne(ctx context.Context, collection string, filter Filter) (Document, error)

	// Find returns all documents in collection matching filter, eagerly
	// materialized, in store-native order. An empty result is not an error.
	Find(ctx context.Context, collection string, filter Filter) ([]Document, error)

	// InsertOne appends a new document to collection.
	InsertOne(ctx context.Context, collection string, doc Document) error

	// UpdateOne merges set into the first document matching filter and
	// returns the number of documents modified (0 or 1).
	UpdateOne(ctx context.Context, collection string, filter Filter, set Document) (int64, error)

	// DeleteOne removes the first document matching filter and returns the
	// number of documents deleted (0 or 1).
	DeleteOne(ctx context.Context, collection string, filter Filter) (int64, error)

	// DeleteMany removes every document matching filter and returns the
	// number of documents deleted.
	DeleteMany(ctx context.Context, collection string, filter Filter) (int64, error)

	// Ping verifies connectivity with the backing store.
	Ping(ctx context.Context) error

	// Close releases the underlying connection resources.
	Close(ctx context.Context) error
}
