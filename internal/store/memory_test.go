package store

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMemoryStore() DocumentStore {
	return NewMemoryStore(logger.Nop())
}

func TestMemoryStore_FindOne(t *testing.T) {
	ctx := context.Background()
	documents := newTestMemoryStore()

	_, err := documents.FindOne(ctx, CollectionUsers, Filter{"username": "john"})
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	require.NoError(t, documents.InsertOne(ctx, CollectionUsers, Document{"username": "john", "password": "hash"}))

	doc, err := documents.FindOne(ctx, CollectionUsers, Filter{"username": "john"})
	require.NoError(t, err)
	assert.Equal(t, "hash", doc["password"])
}

func TestMemoryStore_FindOne_FirstMatch(t *testing.T) {
	ctx := context.Background()
	documents := newTestMemoryStore()

	require.NoError(t, documents.InsertOne(ctx, CollectionPasswords, Document{"username": "john", "service_name": "github", "password": "first"}))
	require.NoError(t, documents.InsertOne(ctx, CollectionPasswords, Document{"username": "john", "service_name": "github", "password": "second"}))

	doc, err := documents.FindOne(ctx, CollectionPasswords, Filter{"username": "john", "service_name": "github"})
	require.NoError(t, err)
	assert.Equal(t, "first", doc["password"])
}

func TestMemoryStore_Find(t *testing.T) {
	ctx := context.Background()
	documents := newTestMemoryStore()

	require.NoError(t, documents.InsertOne(ctx, CollectionPasswords, Document{"username": "john", "service_name": "github"}))
	require.NoError(t, documents.InsertOne(ctx, CollectionPasswords, Document{"username": "john", "service_name": "gitlab"}))
	require.NoError(t, documents.InsertOne(ctx, CollectionPasswords, Document{"username": "jane", "service_name": "github"}))

	docs, err := documents.Find(ctx, CollectionPasswords, Filter{"username": "john"})
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = documents.Find(ctx, CollectionPasswords, Filter{"username": "nobody"})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemoryStore_CollectionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	documents := newTestMemoryStore()

	require.NoError(t, documents.InsertOne(ctx, CollectionUsers, Document{"username": "john"}))

	_, err := documents.FindOne(ctx, CollectionPasswords, Filter{"username": "john"})
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestMemoryStore_UpdateOne(t *testing.T) {
	ctx := context.Background()
	documents := newTestMemoryStore()

	require.NoError(t, documents.InsertOne(ctx, CollectionPasswords, Document{"username": "john", "service_name": "github", "password": "old"}))

	modified, err := documents.UpdateOne(ctx, CollectionPasswords,
		Filter{"username": "john", "service_name": "github"},
		Document{"password": "new"},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(1), modified)

	doc, err := documents.FindOne(ctx, CollectionPasswords, Filter{"username": "john"})
	require.NoError(t, err)
	assert.Equal(t, "new", doc["password"])
	// untouched fields survive a partial update
	assert.Equal(t, "github", doc["service_name"])
}

func TestMemoryStore_UpdateOne_NoMatch(t *testing.T) {
	ctx := context.Background()
	documents := newTestMemoryStore()

	modified, err := documents.UpdateOne(ctx, CollectionPasswords,
		Filter{"username": "nobody"}, Document{"password": "new"})
	require.NoError(t, err)
	assert.Zero(t, modified)
}

func TestMemoryStore_DeleteOne(t *testing.T) {
	ctx := context.Background()
	documents := newTestMemoryStore()

	require.NoError(t, documents.InsertOne(ctx, CollectionPasswords, Document{"username": "john", "service_name": "github"}))
	require.NoError(t, documents.InsertOne(ctx, CollectionPasswords, Document{"username": "john", "service_name": "github"}))

	deleted, err := documents.DeleteOne(ctx, CollectionPasswords, Filter{"username": "john", "service_name": "github"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	// only the first match is removed
	docs, err := documents.Find(ctx, CollectionPasswords, Filter{"username": "john"})
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestMemoryStore_DeleteMany(t *testing.T) {
	ctx := context.Background()
	documents := newTestMemoryStore()

	require.NoError(t, documents.InsertOne(ctx, CollectionPasswords, Document{"username": "john", "service_name": "github"}))
	require.NoError(t, documents.InsertOne(ctx, CollectionPasswords, Document{"username": "john", "service_name": "gitlab"}))
	require.NoError(t, documents.InsertOne(ctx, CollectionPasswords, Document{"username": "jane", "service_name": "github"}))

	deleted, err := documents.DeleteMany(ctx, CollectionPasswords, Filter{"username": "john"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	docs, err := documents.Find(ctx, CollectionPasswords, Filter{})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "jane", docs[0]["username"])
}

func TestMemoryStore_DeleteMany_NoMatch(t *testing.T) {
	ctx := context.Background()
	documents := newTestMemoryStore()

	deleted, err := documents.DeleteMany(ctx, CollectionPasswords, Filter{"username": "nobody"})
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestMemoryStore_DocumentsAreCopied(t *testing.T) {
	ctx := context.Background()
	documents := newTestMemoryStore()

	original := Document{"username": "john", "password": "hash"}
	require.NoError(t, documents.InsertOne(ctx, CollectionUsers, original))

	// mutating the caller's map must not reach stored state
	original["password"] = "tampered"

	doc, err := documents.FindOne(ctx, CollectionUsers, Filter{"username": "john"})
	require.NoError(t, err)
	assert.Equal(t, "hash", doc["password"])

	// mutating a returned document must not either
	doc["password"] = "tampered"

	doc, err = documents.FindOne(ctx, CollectionUsers, Filter{"username": "john"})
	require.NoError(t, err)
	assert.Equal(t, "hash", doc["password"])
}

func TestMemoryStore_PingAndClose(t *testing.T) {
	ctx := context.Background()
	documents := newTestMemoryStore()

	assert.NoError(t, documents.Ping(ctx))
	assert.NoError(t, documents.Close(ctx))
}
