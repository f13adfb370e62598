// Package auth implements password hashing for account credentials.
package auth

import (
	"warbler/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with bcrypt. The output is
// self-describing: it embeds the algorithm identifier and cost factor.
// An empty password is rejected here, before anything reaches the database.
func HashPassword(plaintext string) (string, error) {
	if plaintext == "" {
		return "", models.NewValidationError("password is required")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether plaintext matches the stored bcrypt hash.
func CheckPassword(hashed, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
