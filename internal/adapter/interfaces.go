// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the go-cred-vault server.
//
// The primary abstraction is [ServerAdapter], which decouples calling code
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-cred-vault/models"
)

// ServerAdapter defines transport-agnostic communication with the vault
// server. Implementations are responsible for serialisation, credential
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
//
// The server issues no tokens or sessions; every authenticated call carries
// the credentials set via SetCredentials.
type ServerAdapter interface {
	// SetCredentials stores the username and password attached to all
	// subsequent authenticated requests.
	SetCredentials(username, password string)

	// Username returns the username currently stored in the adapter, or an
	// empty string if no credentials have been set yet.
	Username() string

	// Register creates a new account on the server and stores the
	// credentials via SetCredentials on success. Returns [ErrConflict]
	// (wrapped) when the username is already taken.
	Register(ctx context.Context, username, password string) error

	// Login verifies the stored credentials against the server. Returns
	// [ErrUnauthorized] (wrapped) when they do not match an account.
	Login(ctx context.Context) error

	// DeleteAccount removes the account matching the stored credentials
	// together with all of its secret records.
	DeleteAccount(ctx context.Context) error

	// SavePassword creates a secret record for the authenticated user.
	// An empty secretValue asks the server to generate one; the returned
	// record carries the value actually stored.
	SavePassword(ctx context.Context, serviceName, use, platform, secretValue string) (models.SecretRecord, error)

	// UpdatePassword overwrites the secret value of the record matching
	// serviceName. Returns [ErrNotFound] (wrapped) when no such record
	// exists.
	UpdatePassword(ctx context.Context, serviceName, newSecretValue string) error

	// DeletePassword removes the record matching serviceName. Returns
	// [ErrNotFound] (wrapped) when no such record exists.
	DeletePassword(ctx context.Context, serviceName string) error

	// ListPasswords returns every secret record owned by the authenticated
	// user.
	ListPasswords(ctx context.Context) ([]models.SecretRecord, error)
}
