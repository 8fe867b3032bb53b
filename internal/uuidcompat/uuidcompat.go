// Package uuidcompat bridges ULIDs and UUIDs for the `ulidkit uuid`
// commands. Both are 128-bit values, so conversion is a byte-for-byte
// reinterpretation; a converted UUID does not carry valid RFC 4122 version
// bits and exists for interop and storage migration, not for generation.
package uuidcompat

import (
	"github.com/google/uuid"

	"github.com/nushell-works/ulidkit/pkg/ulid"
)

// Generate returns a random (v4) UUID string.
func Generate() string { return uuid.NewString() }

// Validate reports whether s parses as a UUID in any accepted textual form.
func Validate(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// Components is the decomposed view of a parsed UUID.
type Components struct {
	UUID    string `json:"uuid"`
	Version int    `json:"version"`
	Variant string `json:"variant"`
	Valid   bool   `json:"valid"`
}

// Parse decodes s into components.
func Parse(s string) (Components, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Components{}, err
	}
	return Components{
		UUID:    u.String(),
		Version: int(u.Version()),
		Variant: u.Variant().String(),
		Valid:   true,
	}, nil
}

// FromULID reinterprets a ULID's 16 bytes as a UUID.
func FromULID(u ulid.ULID) uuid.UUID {
	var out uuid.UUID
	copy(out[:], u.Bytes())
	return out
}

// ToULID reinterprets a UUID's 16 bytes as a ULID. Any 16-byte value fits
// the ULID domain, so the conversion is total; the resulting timestamp is
// whatever the UUID's first six bytes happen to encode.
func ToULID(u uuid.UUID) ulid.ULID {
	out, _ := ulid.FromBytes(u[:])
	return out
}
