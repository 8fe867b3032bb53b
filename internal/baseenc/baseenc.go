// Package baseenc implements Crockford Base32 for arbitrary byte strings,
// used by the `ulidkit encode`/`decode` commands. This is the generic
// bit-stream encoding; the fixed 26-character ULID framing lives in pkg/ulid.
package baseenc

import (
	"fmt"
	"strings"
)

const alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var decodeMap = func() (m [256]byte) {
	for i := range m {
		m[i] = 0xFF
	}
	for i := 0; i < len(alphabet); i++ {
		c := alphabet[i]
		m[c] = byte(i)
		if c >= 'A' && c <= 'Z' {
			m[c+'a'-'A'] = byte(i)
		}
	}
	return m
}()

// Encode renders data as unpadded Crockford Base32, MSB first.
func Encode(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow((len(data)*8 + 4) / 5)

	var acc uint16
	bits := 0
	for _, b := range data {
		acc = acc<<8 | uint16(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			sb.WriteByte(alphabet[(acc>>bits)&31])
		}
	}
	if bits > 0 {
		sb.WriteByte(alphabet[(acc<<(5-bits))&31])
	}
	return sb.String()
}

// Decode reverses Encode. Input is case-insensitive; characters outside the
// alphabet are rejected with their position.
func Decode(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	out := make([]byte, 0, len(s)*5/8)

	var acc uint16
	bits := 0
	for i := 0; i < len(s); i++ {
		d := decodeMap[s[i]]
		if d == 0xFF {
			return nil, fmt.Errorf("baseenc: invalid character %q at position %d", s[i], i)
		}
		acc = acc<<5 | uint16(d)
		bits += 5
		if bits >= 8 {
			bits -= 8
			out = append(out, byte(acc>>bits))
		}
	}
	// Leftover bits are encoder padding and must be zero.
	if bits > 0 && acc&(1<<uint(bits)-1) != 0 {
		return nil, fmt.Errorf("baseenc: non-zero trailing bits")
	}
	return out, nil
}
