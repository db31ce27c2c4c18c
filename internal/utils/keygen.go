package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSessionToken returns a new opaque session token: 32 bytes from
// crypto/rand, hex encoded (64 characters, 256 bits of entropy).
func GenerateSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
