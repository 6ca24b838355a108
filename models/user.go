package models

import "time"

// User represents an account entity used for authentication.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// Username is the unique, case-sensitive user identifier.
	// It is immutable after the account is created.
	Username string `json:"username"`

	// PasswordHash stores the bcrypt digest of the user's login password.
	// This value MUST be a hash produced by the account service,
	// never a plaintext password. It is not exposed via JSON.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// CollectionName returns the name of the document-store collection
// associated with the User model.
func (u User) CollectionName() string {
	return "users"
}

// Document converts the user into its document-store representation.
// Field names match the wire format of the `users` collection.
func (u User) Document() map[string]any {
	return map[string]any{
		"username":   u.Username,
		"password":   u.PasswordHash,
		"created_at": u.CreatedAt,
	}
}

// UserFromDocument reconstructs a [User] from a raw document previously
// persisted in the `users` collection. Unknown fields are ignored; missing
// fields leave the corresponding struct field at its zero value.
func UserFromDocument(doc map[string]any) User {
	return User{
		Username:     stringField(doc, "username"),
		PasswordHash: stringField(doc, "password"),
		CreatedAt:    timeField(doc, "created_at"),
	}
}
