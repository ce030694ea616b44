package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// InviteTokenBytes is the entropy of an invite token. Tokens are capabilities,
// so they must stay unpredictable.
const InviteTokenBytes = 32

// GenerateInviteToken returns a hex encoded token read from crypto/rand.
func GenerateInviteToken() (string, error) {
	return randomHex(InviteTokenBytes)
}

// RandomHex returns n random bytes hex encoded.
func RandomHex(n int) (string, error) {
	return randomHex(n)
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
