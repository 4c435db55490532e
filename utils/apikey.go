package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// API credential formats are a published contract:
// key  ak_{32 hex chars}, secret sk_{64 hex chars}.
// The secret is shown once and stored only as its SHA-256 digest.

func GenerateAPIKey() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "ak_" + hex.EncodeToString(b), nil
}

func GenerateAPISecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "sk_" + hex.EncodeToString(b), nil
}

// HashAPISecret digests the full secret string, prefix included.
func HashAPISecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// VerifyAPISecret compares a presented secret against the stored digest in
// constant time.
func VerifyAPISecret(secret, storedHash string) bool {
	presented := HashAPISecret(secret)
	return subtle.ConstantTimeCompare([]byte(presented), []byte(storedHash)) == 1
}

// ValidateKeyFormat does a cheap shape check before hitting the database.
func ValidateKeyFormat(apiKey string) error {
	if len(apiKey) != 35 || apiKey[:3] != "ak_" {
		return fmt.Errorf("malformed API key")
	}
	return nil
}
