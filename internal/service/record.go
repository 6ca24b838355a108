// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-cred-vault/internal/config"
	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/store"
	"github.com/MKhiriev/go-cred-vault/internal/utils"
	"github.com/MKhiriev/go-cred-vault/models"
)

// recordService is the concrete implementation of [RecordService].
// Every operation is scoped to the username fixed at construction; filters
// always carry that username, so one user's records are unreachable from a
// service bound to another.
//
// The service holds no state between calls beyond the bound username and
// its collaborators, so it is safe for concurrent use.
type recordService struct {
	// username is the owning user every operation is scoped to.
	username string

	// passwordLength is the length of generated secrets when the caller
	// saves an entry without supplying one.
	passwordLength int

	// documents is the data-access layer holding the `passwords` collection.
	documents store.DocumentStore

	// uuid produces record identifiers for newly saved entries.
	uuid *utils.UUIDGenerator

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewRecordService constructs a [RecordService] bound to username.
//
// A blank username (after trimming) is rejected with ErrBlankUsername at
// construction time so that no later operation can run unscoped.
func NewRecordService(username string, documents store.DocumentStore, cfg config.App, logger *logger.Logger) (RecordService, error) {
	if strings.TrimSpace(username) == "" {
		logger.Error().Msg("record service rejected: blank username")
		return nil, ErrBlankUsername
	}

	logger.Debug().Str("username", username).Msg("creating record service")
	return &recordService{
		username:       username,
		passwordLength: cfg.GeneratedPasswordLength,
		documents:      documents,
		uuid:           utils.NewUUIDGenerator(),
		logger:         logger,
	}, nil
}

// Username returns the username this service is bound to.
func (r *recordService) Username() string {
	return r.username
}

// GeneratePassword returns a random secret of the given length. A
// non-positive length falls back to the configured default.
func (r *recordService) GeneratePassword(length int) string {
	if length <= 0 {
		length = r.passwordLength
	}
	return GeneratePassword(length)
}

// SavePassword stores a new secret record for the bound username.
//
// When secretValue is empty a secret of the configured default length is
// generated. The insert always succeeds if the store is reachable: saving
// the same service name twice creates a second record rather than failing.
func (r *recordService) SavePassword(ctx context.Context, serviceName, use, platform, secretValue string) (models.SecretRecord, error) {
	log := logger.FromContext(ctx)

	if secretValue == "" {
		secretValue = GeneratePassword(r.passwordLength)
	}

	record := models.SecretRecord{
		RecordID:           r.uuid.Generate(),
		Username:           r.username,
		ServiceName:        serviceName,
		Use:                use,
		Platform:           platform,
		SecretValue:        secretValue,
		CreatedOrUpdatedAt: time.Now().UTC(),
	}

	if err := r.documents.InsertOne(ctx, store.CollectionPasswords, record.Document()); err != nil {
		log.Err(err).Str("username", r.username).Str("service_name", serviceName).Msg("secret record was not saved")
		return models.SecretRecord{}, fmt.Errorf("secret record was not saved: %w", err)
	}

	return record, nil
}

// UpdatePassword overwrites the secret value and the timestamp of the first
// record matching (username, serviceName).
//
// Returns (true, nil) iff exactly one record was modified; a missing record
// is reported as (false, nil), not as an error.
func (r *recordService) UpdatePassword(ctx context.Context, serviceName, newSecretValue string) (bool, error) {
	log := logger.FromContext(ctx)

	modified, err := r.documents.UpdateOne(ctx,
		store.CollectionPasswords,
		store.Filter{"username": r.username, "service_name": serviceName},
		store.Document{"password": newSecretValue, "timestamp": time.Now().UTC()},
	)
	if err != nil {
		log.Err(err).Str("username", r.username).Str("service_name", serviceName).Msg("secret record update failed")
		return false, fmt.Errorf("secret record update failed: %w", err)
	}

	return modified > 0, nil
}

// DeletePassword removes the first record matching (username, serviceName).
// Returns (true, nil) iff a record was removed.
func (r *recordService) DeletePassword(ctx context.Context, serviceName string) (bool, error) {
	log := logger.FromContext(ctx)

	deleted, err := r.documents.DeleteOne(ctx,
		store.CollectionPasswords,
		store.Filter{"username": r.username, "service_name": serviceName},
	)
	if err != nil {
		log.Err(err).Str("username", r.username).Str("service_name", serviceName).Msg("secret record deletion failed")
		return false, fmt.Errorf("secret record deletion failed: %w", err)
	}

	return deleted > 0, nil
}

// ViewAllPasswords returns every secret record owned by the bound username.
//
// The result is materialized eagerly and carries the store's native order;
// no particular sorting is guaranteed.
func (r *recordService) ViewAllPasswords(ctx context.Context) ([]models.SecretRecord, error) {
	log := logger.FromContext(ctx)

	docs, err := r.documents.Find(ctx, store.CollectionPasswords, store.Filter{"username": r.username})
	if err != nil {
		log.Err(err).Str("username", r.username).Msg("secret record listing failed")
		return nil, fmt.Errorf("secret record listing failed: %w", err)
	}

	records := make([]models.SecretRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, models.SecretRecordFromDocument(doc))
	}

	return records, nil
}
