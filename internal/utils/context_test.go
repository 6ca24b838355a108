package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetUsernameFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), UsernameCtxKey, "john")

	username, ok := GetUsernameFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "john", username)
}

func TestGetUsernameFromContext_Missing(t *testing.T) {
	username, ok := GetUsernameFromContext(context.Background())
	assert.False(t, ok)
	assert.Empty(t, username)
}

func TestGetUsernameFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), UsernameCtxKey, 42)

	_, ok := GetUsernameFromContext(ctx)
	assert.False(t, ok)
}

func TestGetUsernameFromContext_StringKeyDoesNotCollide(t *testing.T) {
	// a plain string key must not satisfy the typed lookup
	ctx := context.WithValue(context.Background(), "username", "john") //nolint:staticcheck

	_, ok := GetUsernameFromContext(ctx)
	assert.False(t, ok)
}
