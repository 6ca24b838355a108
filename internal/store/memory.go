package store

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-cred-vault/internal/logger"
)

// memoryStore is a process-local [DocumentStore] backed by plain maps.
// It is used by tests and by the `memory` backend for local runs.
//
// Documents are deep-copied on the way in and out so callers can never
// mutate stored state through an aliased map.
type memoryStore struct {
	logger *logger.Logger

	mu          sync.RWMutex
	collections map[string][]Document
}

// NewMemoryStore constructs an empty in-memory [DocumentStore].
func NewMemoryStore(logger *logger.Logger) DocumentStore {
	logger.Debug().Msg("creating in-memory document store")
	return &memoryStore{
		logger:      logger,
		collections: make(map[string][]Document),
	}
}

func (s *memoryStore) FindOne(_ context.Context, collection string, filter Filter) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.collections[collection] {
		if matches(doc, filter) {
			return cloneDocument(doc), nil
		}
	}

	return nil, ErrDocumentNotFound
}

func (s *memoryStore) Find(_ context.Context, collection string, filter Filter) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make([]Document, 0)
	for _, doc := range s.collections[collection] {
		if matches(doc, filter) {
			found = append(found, cloneDocument(doc))
		}
	}

	return found, nil
}

func (s *memoryStore) InsertOne(_ context.Context, collection string, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.collections[collection] = append(s.collections[collection], cloneDocument(doc))
	return nil
}

func (s *memoryStore) UpdateOne(_ context.Context, collection string, filter Filter, set Document) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range s.collections[collection] {
		if matches(doc, filter) {
			for key, value := range set {
				doc[key] = value
			}
			return 1, nil
		}
	}

	return 0, nil
}

func (s *memoryStore) DeleteOne(_ context.Context, collection string, filter Filter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i, doc := range docs {
		if matches(doc, filter) {
			s.collections[collection] = append(docs[:i], docs[i+1:]...)
			return 1, nil
		}
	}

	return 0, nil
}

func (s *memoryStore) DeleteMany(_ context.Context, collection string, filter Filter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	kept := make([]Document, 0, len(s.collections[collection]))
	for _, doc := range s.collections[collection] {
		if matches(doc, filter) {
			deleted++
			continue
		}
		kept = append(kept, doc)
	}
	s.collections[collection] = kept

	return deleted, nil
}

func (s *memoryStore) Ping(_ context.Context) error {
	return nil
}

func (s *memoryStore) Close(_ context.Context) error {
	return nil
}

// matches reports whether every filter pair is present in doc with an equal
// value. Vault filters only ever carry comparable scalars (strings).
func matches(doc Document, filter Filter) bool {
	for key, want := range filter {
		if doc[key] != want {
			return false
		}
	}
	return true
}

func cloneDocument(doc Document) Document {
	clone := make(Document, len(doc))
	for key, value := range doc {
		clone[key] = value
	}
	return clone
}
