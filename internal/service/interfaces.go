package service

import (
	"context"

	"github.com/MKhiriev/go-cred-vault/models"
)

// AccountService owns the user identity lifecycle: registration,
// password-based authentication, and cascading account deletion.
type AccountService interface {
	// Register creates a new user account with a bcrypt-hashed password.
	// Returns ErrBlankUsername if the username is blank after trimming,
	// ErrLoginAlreadyExists if the username is taken.
	Register(ctx context.Context, username, password string) error

	// Authenticate reports whether the given credentials match a stored
	// account. Unknown usernames and wrong passwords both yield (false, nil);
	// only store failures produce an error.
	Authenticate(ctx context.Context, username, password string) (bool, error)

	// DeleteUser re-authenticates the caller, then deletes every secret
	// record owned by the user followed by the user account itself.
	// Returns ErrAuthenticationFailed when the credentials do not match.
	DeleteUser(ctx context.Context, username, password string) error
}

// RecordService owns the secret-record lifecycle for exactly one username,
// fixed at construction and immutable for the service's lifetime.
type RecordService interface {
	// Username returns the username this service is bound to.
	Username() string

	// GeneratePassword returns a random secret of the given length drawn
	// from the generator alphabet. Non-positive lengths fall back to the
	// configured default.
	GeneratePassword(length int) string

	// SavePassword stores a new secret record. An empty secretValue is
	// replaced with a generated one. Duplicate service names are allowed.
	SavePassword(ctx context.Context, serviceName, use, platform, secretValue string) (models.SecretRecord, error)

	// UpdatePassword overwrites the secret value and timestamp of the
	// record matching serviceName. Returns false when no record matches.
	UpdatePassword(ctx context.Context, serviceName, newSecretValue string) (bool, error)

	// DeletePassword removes the record matching serviceName.
	// Returns false when no record matches.
	DeletePassword(ctx context.Context, serviceName string) (bool, error)

	// ViewAllPasswords returns every record owned by the bound username,
	// eagerly materialized, in store-native order.
	ViewAllPasswords(ctx context.Context) ([]models.SecretRecord, error)
}
