// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SecretRecord is a single password entry owned by one user.
//
// Secret values are stored as-is (unencrypted) in the document store; only
// login credentials are hashed. Confidentiality at rest is a property of the
// deployment, not of this type.
type SecretRecord struct {
	// RecordID is the server-assigned unique identifier of the entry.
	RecordID string `json:"record_id"`

	// Username identifies the owning user account. The relation is an
	// owning one; referential integrity is not enforced by the store.
	Username string `json:"username"`

	// ServiceName identifies the target service or account the secret
	// belongs to (e.g. "github"). Uniqueness per user is not enforced.
	ServiceName string `json:"service_name"`

	// Use is a free-text description of what the secret is used for.
	Use string `json:"use"`

	// Platform is a free-text platform or device label.
	Platform string `json:"platform"`

	// SecretValue is the stored secret itself, either user-supplied or
	// generated. Plaintext by design — see the package note above.
	SecretValue string `json:"secret_value"`

	// CreatedOrUpdatedAt is set on insert and refreshed on every update
	// of the secret value.
	CreatedOrUpdatedAt time.Time `json:"created_or_updated_at"`
}

// CollectionName returns the name of the document-store collection
// associated with the SecretRecord model.
func (r SecretRecord) CollectionName() string {
	return "passwords"
}

// Document converts the record into its document-store representation.
// The wire field names ("password", "timestamp") predate this codebase and
// are kept for compatibility with existing stored data.
func (r SecretRecord) Document() map[string]any {
	return map[string]any{
		"record_id":    r.RecordID,
		"username":     r.Username,
		"service_name": r.ServiceName,
		"use":          r.Use,
		"platform":     r.Platform,
		"password":     r.SecretValue,
		"timestamp":    r.CreatedOrUpdatedAt,
	}
}

// SecretRecordFromDocument reconstructs a [SecretRecord] from a raw document
// previously persisted in the `passwords` collection.
func SecretRecordFromDocument(doc map[string]any) SecretRecord {
	return SecretRecord{
		RecordID:           stringField(doc, "record_id"),
		Username:           stringField(doc, "username"),
		ServiceName:        stringField(doc, "service_name"),
		Use:                stringField(doc, "use"),
		Platform:           stringField(doc, "platform"),
		SecretValue:        stringField(doc, "password"),
		CreatedOrUpdatedAt: timeField(doc, "timestamp"),
	}
}
