package utils

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/DhavalSuthar-24/squadup/pkg/token"
)

const passwordCost = 12

// unusablePrefix can never be produced by bcrypt, so CheckPassword always fails on it.
const unusablePrefix = "!unusable!"

func HashPassword(p string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(p), passwordCost)
	return string(bytes), err
}

func CheckPassword(hash, pass string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pass))
	return err == nil
}

// UnusablePasswordHash returns a random value that no password matches.
// Used for placeholder accounts created ahead of registration.
func UnusablePasswordHash() (string, error) {
	r, err := token.RandomHex(16)
	if err != nil {
		return "", err
	}
	return unusablePrefix + r, nil
}

// IsUnusable reports whether hash came from UnusablePasswordHash.
func IsUnusable(hash string) bool {
	return len(hash) >= len(unusablePrefix) && hash[:len(unusablePrefix)] == unusablePrefix
}
