package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-cred-vault/internal/config"
	"github.com/MKhiriev/go-cred-vault/internal/logger"
)

// NewDocumentStore constructs the [DocumentStore] adapter selected by
// cfg.Backend. Supported backends: "mongo", "postgres", "memory".
func NewDocumentStore(ctx context.Context, cfg config.Storage, log *logger.Logger) (DocumentStore, error) {
	log.Debug().Str("backend", cfg.Backend).Msg("creating document store")

	switch cfg.Backend {
	case config.BackendMongo:
		return NewMongoStore(ctx, cfg.Mongo, log)
	case config.BackendPostgres:
		return NewPostgresStore(ctx, cfg.DB, log)
	case config.BackendMemory:
		return NewMemoryStore(log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
