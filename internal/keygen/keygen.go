// Package keygen generates the public keys and administrative secret keys of
// shortened URLs.
//
// Values are drawn from crypto/rand through go-nanoid. The generator does not
// guarantee uniqueness: callers rely on the storage layer to reject
// collisions and ask for a new value.
package keygen

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Alphabet is the set of characters keys are built from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const (
	DefaultKeyLength       = 5
	DefaultSecretKeyLength = 8
)

// GenerateKey returns a random public key of the given length.
// A non-positive length falls back to DefaultKeyLength.
func GenerateKey(length int) (string, error) {
	const op = "keygen.GenerateKey"

	if length <= 0 {
		length = DefaultKeyLength
	}

	key, err := gonanoid.Generate(Alphabet, length)
	if err != nil {
		return "", fmt.Errorf("%s: failed to generate key: %w", op, err)
	}

	return key, nil
}

// GenerateSecretKey returns a random secret key of the given length.
// A non-positive length falls back to DefaultSecretKeyLength.
func GenerateSecretKey(length int) (string, error) {
	const op = "keygen.GenerateSecretKey"

	if length <= 0 {
		length = DefaultSecretKeyLength
	}

	secretKey, err := gonanoid.Generate(Alphabet, length)
	if err != nil {
		return "", fmt.Errorf("%s: failed to generate secret key: %w", op, err)
	}

	return secretKey, nil
}
