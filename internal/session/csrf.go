package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const csrfTokenBytes = 32

// NewCSRFToken generates a cryptographically random URL-safe token for the
// double-submit CSRF check.
func NewCSRFToken() (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate csrf token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
