package crypto

import (
	"crypto/rand"
	"encoding/hex"
)

// SessionTokenBytes is the entropy of a session token; hex encoding yields
// 64 characters on the wire and in the store.
const SessionTokenBytes = 32

func GenerateSessionToken() (string, error) {
	bytes := make([]byte, SessionTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// TokenPrefix returns a short prefix safe for logging. Raw tokens must never
// reach a log sink.
func TokenPrefix(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8]
}
