package random

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// MinTokenBytes keeps URL tokens above 128 bits of entropy.
const MinTokenBytes = 16

// Bytes returns n cryptographically secure random bytes.
func Bytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generate random bytes: %w", err)
	}
	return b, nil
}

// URLToken generates an unpadded base64url token from n random bytes.
// n below MinTokenBytes is raised to MinTokenBytes.
func URLToken(n int) (string, error) {
	if n < MinTokenBytes {
		n = MinTokenBytes
	}
	b, err := Bytes(n)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
