package util

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// HashToken derives a stable one-way reference for a token. Audit records
// store this reference instead of the token itself, so a leaked audit table
// never yields usable credentials.
func HashToken(token, salt string) string {
	hash := pbkdf2.Key([]byte(token), []byte(salt), 10000, 50, sha256.New)
	return hex.EncodeToString(hash)
}
