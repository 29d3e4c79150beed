package service

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// passwordDigest reduces a password to a fixed-size bcrypt input. bcrypt only
// reads the first 72 bytes, while the registration form accepts up to 250
// characters. The SHA-256 sum is base64 encoded because bcrypt stops at NUL
// bytes.
func passwordDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	digest := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(digest, sum[:])
	return digest
}

// HashPassword hashes a password for storage. Every password within the form
// limits is accepted, regardless of length.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(passwordDigest(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether the password matches a hash produced by
// HashPassword.
func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), passwordDigest(password))
}
