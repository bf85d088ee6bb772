package utils

import (
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// HashPassword produces a one-way bcrypt hash of a plaintext secret.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost) // Hash with default cost
	if err != nil {
		return "", err // Return error if hashing fails
	}
	return string(hash), nil
}

// CheckPassword reports whether a plaintext secret matches a stored hash.
// Verification is by re-hash-and-compare, never decryption.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
