// Package pkce generates the random material for an OAuth authorization
// attempt: the CSRF state value and the RFC 7636 code verifier/challenge pair.
package pkce

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

const (
	stateBytes    = 32
	verifierBytes = 32
)

// GenerateState returns a URL-safe random state value for CSRF protection.
// An entropy-source failure is returned as an error; callers must abort the
// login attempt rather than fall back to weaker randomness.
func GenerateState() (string, error) {
	return randomURLSafe(stateBytes)
}

// GenerateCodeVerifier returns a random PKCE code verifier. The base64url
// no-pad encoding keeps the value inside the RFC 7636 unreserved alphabet.
func GenerateCodeVerifier() (string, error) {
	return randomURLSafe(verifierBytes)
}

// CodeChallengeS256 derives the S256 code challenge from a verifier:
// base64url_no_pad(SHA-256(verifier)).
func CodeChallengeS256(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func randomURLSafe(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("entropy source failed: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
