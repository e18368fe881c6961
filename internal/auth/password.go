// Package auth provides authentication primitives for the registry: password
// hashing, JWT creation/verification, and invite token generation.
// See internal/middleware/auth.go for the request-time authentication logic
// that uses these primitives.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 12

	// InviteTokenLength is the length of the random part of an invite token in bytes
	InviteTokenLength = 32
)

// HashPassword hashes a plaintext password with bcrypt for storage
func HashPassword(password string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashBytes), nil
}

// VerifyPassword checks if a provided password matches the stored hash
func VerifyPassword(password, storedHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password))
	return err == nil
}

// GenerateInviteToken creates a new random invite token. Invite tokens are
// stored in plaintext (unlike passwords) because they must be looked up by
// value at registration time.
func GenerateInviteToken() (string, error) {
	randomBytes := make([]byte, InviteTokenLength)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(randomBytes), nil
}
