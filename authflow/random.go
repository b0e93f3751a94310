package authflow

import (
	"crypto/rand"
	"encoding/base64"
)

const sessionIDBytes = 64

// newSessionID returns an opaque high-entropy identifier: 64 bytes of
// randomness, base64url encoded.
func newSessionID() string {
	b := make([]byte, sessionIDBytes)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
