// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/store"
	"github.com/MKhiriev/go-cred-vault/models"
	"golang.org/x/crypto/bcrypt"
)

// accountService is the concrete implementation of [AccountService].
// It persists users in the `users` collection of the injected document
// store and hashes login passwords with bcrypt (fresh random salt per hash).
//
// Plaintext passwords exist only in the arguments of its methods; no code
// path stores or logs them.
type accountService struct {
	// documents is the data-access layer used to create and look up users
	// and to cascade-delete their secret records.
	documents store.DocumentStore

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAccountService constructs an [AccountService] wired to the given
// document store.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAccountService(documents store.DocumentStore, logger *logger.Logger) AccountService {
	logger.Debug().Msg("creating account service")
	return &accountService{
		documents: documents,
		logger:    logger,
	}
}

// Register creates a new user account.
//
// It validates that the username is non-blank after trimming, checks for an
// existing account, hashes the password with bcrypt, and inserts the new
// user document.
//
// Returns:
//   - ErrBlankUsername if the username is blank.
//   - ErrLoginAlreadyExists if the username is already registered (either
//     found during the pre-check or reported as a duplicate key on insert).
//   - A wrapped storage error if a store call fails.
func (a *accountService) Register(ctx context.Context, username, password string) error {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(username) == "" {
		log.Error().Msg("blank username provided")
		return ErrBlankUsername
	}

	_, err := a.documents.FindOne(ctx, store.CollectionUsers, store.Filter{"username": username})
	if err == nil {
		return ErrLoginAlreadyExists
	}
	if !errors.Is(err, store.ErrDocumentNotFound) {
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return fmt.Errorf("user search by username failed: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Str("username", username).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err = a.documents.InsertOne(ctx, store.CollectionUsers, user.Document()); err != nil {
		// the users collection carries a uniqueness index in backends that
		// support one; a concurrent registration surfaces here instead of
		// in the pre-check above
		if errors.Is(err, store.ErrDuplicateKey) {
			return ErrLoginAlreadyExists
		}
		log.Err(err).Str("username", username).Msg("user creation ended with error")
		return fmt.Errorf("user creation ended with error: %w", err)
	}

	return nil
}

// Authenticate verifies the given credentials against the stored account.
//
// An unknown username and a wrong password both return (false, nil) — the
// caller cannot distinguish the two cases. bcrypt's comparison is
// constant-time over the digest. Only store failures produce an error.
func (a *accountService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	log := logger.FromContext(ctx)

	doc, err := a.documents.FindOne(ctx, store.CollectionUsers, store.Filter{"username": username})
	if err != nil {
		if errors.Is(err, store.ErrDocumentNotFound) {
			return false, nil
		}
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return false, fmt.Errorf("user search by username failed: %w", err)
	}

	user := models.UserFromDocument(doc)
	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return false, nil
	}

	return true, nil
}

// DeleteUser removes a user account together with all of its secret records.
//
// The caller is re-authenticated first; a mismatch returns
// ErrAuthenticationFailed. Dependent records are deleted before the user
// document so that a failure mid-way cannot leave records without a
// deletable owner. The two deletes are separate store calls — the cascade is
// best-effort, not transactional, and a record saved concurrently may escape
// it.
func (a *accountService) DeleteUser(ctx context.Context, username, password string) error {
	log := logger.FromContext(ctx)

	authenticated, err := a.Authenticate(ctx, username, password)
	if err != nil {
		return err
	}
	if !authenticated {
		log.Error().Str("username", username).Msg("account deletion refused: authentication failed")
		return ErrAuthenticationFailed
	}

	deletedRecords, err := a.documents.DeleteMany(ctx, store.CollectionPasswords, store.Filter{"username": username})
	if err != nil {
		log.Err(err).Str("username", username).Msg("cascade deletion of secret records failed")
		return fmt.Errorf("cascade deletion of secret records failed: %w", err)
	}

	deletedUsers, err := a.documents.DeleteOne(ctx, store.CollectionUsers, store.Filter{"username": username})
	if err != nil {
		log.Err(err).Str("username", username).Msg("user deletion ended with error")
		return fmt.Errorf("user deletion ended with error: %w", err)
	}

	log.Info().
		Str("username", username).
		Int64("deleted_records", deletedRecords).
		Int64("deleted_users", deletedUsers).
		Msg("user and all associated secret records deleted")

	return nil
}
