package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateVerificationToken returns a 64 character hex token for email
// verification links.
func GenerateVerificationToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return hex.EncodeToString(bytes), nil
}
