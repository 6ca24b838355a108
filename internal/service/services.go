package service

import (
	"github.com/MKhiriev/go-cred-vault/internal/config"
	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/store"
)

// Services aggregates the vault's business-logic services over a single
// document store. Record services are created per authenticated username via
// [Services.RecordsFor].
type Services struct {
	Accounts AccountService

	documents store.DocumentStore
	cfg       config.App
	logger    *logger.Logger
}

func NewServices(documents store.DocumentStore, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		Accounts:  NewAccountService(documents, logger),
		documents: documents,
		cfg:       cfg.App,
		logger:    logger,
	}
}

// RecordsFor returns a [RecordService] bound to username.
// Returns ErrBlankUsername for a blank username.
func (s *Services) RecordsFor(username string) (RecordService, error) {
	return NewRecordService(username, s.documents, s.cfg, s.logger)
}
