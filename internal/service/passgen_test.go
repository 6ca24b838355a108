package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratePassword_Length(t *testing.T) {
	for _, length := range []int{1, 8, 10, 32, 128} {
		assert.Len(t, GeneratePassword(length), length)
	}
}

func TestGeneratePassword_Alphabet(t *testing.T) {
	password := GeneratePassword(512)

	for _, char := range password {
		assert.True(t, strings.ContainsRune(passwordAlphabet, char),
			"generated password contains %q which is outside the alphabet", char)
	}
}

func TestGeneratePassword_NotConstant(t *testing.T) {
	// with a 64-symbol alphabet two independent 32-char passwords
	// colliding is practically impossible
	assert.NotEqual(t, GeneratePassword(32), GeneratePassword(32))
}

func TestGeneratePassword_ZeroLength(t *testing.T) {
	assert.Empty(t, GeneratePassword(0))
}
