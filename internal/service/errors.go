package service

import "errors"

// Sentinel errors returned by the account and record services. Callers
// should use [errors.Is] to match against these values.
var (
	// ErrBlankUsername is returned when a username is empty (or whitespace
	// only) at registration or record-service construction time.
	ErrBlankUsername = errors.New("username cannot be blank")

	// ErrLoginAlreadyExists is returned when an attempt to register a new
	// user fails because the username is already taken.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrAuthenticationFailed is returned when account deletion is refused
	// because the supplied credentials do not match. Unknown usernames and
	// wrong passwords are deliberately not distinguished.
	ErrAuthenticationFailed = errors.New("authentication failed")
)
