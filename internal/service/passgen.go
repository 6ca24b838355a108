package service

import "math/rand/v2"

// passwordAlphabet is the character set generated secrets are drawn from:
// ASCII letters, digits, and the two symbols "@" and "$".
const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789@$"

// GeneratePassword returns a string of length characters drawn uniformly at
// random (with replacement) from [passwordAlphabet].
//
// The generator uses the general-purpose math/rand/v2 source, not crypto
// rand. Generated secrets are convenience defaults for entries saved without
// one, not high-entropy key material.
func GeneratePassword(length int) string {
	secret := make([]byte, length)
	for i := range secret {
		secret[i] = passwordAlphabet[rand.IntN(len(passwordAlphabet))]
	}
	return string(secret)
}
