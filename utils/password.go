package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateOneTimePassword returns a random password used for exactly one
// login round-trip after the phone bridge. The next bridge call rotates
// it, so it is never a long-term credential.
func GenerateOneTimePassword() (string, error) {
	buf := make([]byte, 18)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
