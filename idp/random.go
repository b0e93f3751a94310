package idp

import (
	"crypto/rand"
	"encoding/base64"
)

// randomToken creates a random base64url string from length bytes of entropy.
func randomToken(length int) string {
	b := make([]byte, length)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
