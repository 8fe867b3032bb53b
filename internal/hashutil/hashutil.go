// Package hashutil backs the `ulidkit hash` commands: plain digests plus a
// cryptographically secure random-hex helper offered as the safe alternative
// to misusing ULIDs as tokens.
package hashutil

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"lukechampine.com/blake3"
)

// Output bounds for variable-length digests and random tokens, in bytes.
const (
	MinOutputLen = 1
	MaxOutputLen = 1024
	MaxRandomLen = 8192
)

// SHA256 returns the hex SHA-256 digest of data.
func SHA256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SHA512 returns the hex SHA-512 digest of data.
func SHA512(data []byte) string {
	sum := sha512.Sum512(data)
	return hex.EncodeToString(sum[:])
}

// Blake3 returns the hex BLAKE3 digest of data with the requested output
// length in bytes (1..1024).
func Blake3(data []byte, outputLen int) (string, error) {
	if outputLen < MinOutputLen || outputLen > MaxOutputLen {
		return "", fmt.Errorf("hashutil: output length %d not in [%d, %d]", outputLen, MinOutputLen, MaxOutputLen)
	}
	h := blake3.New(outputLen, nil)
	_, _ = h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// RandomHex returns n cryptographically random bytes as hex. This is what to
// use where a ULID would be tempting but unsafe (tokens, nonces).
func RandomHex(n int) (string, error) {
	if n < MinOutputLen || n > MaxRandomLen {
		return "", fmt.Errorf("hashutil: random length %d not in [%d, %d]", n, MinOutputLen, MaxRandomLen)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("hashutil: read random: %w", err)
	}
	return hex.EncodeToString(b), nil
}
