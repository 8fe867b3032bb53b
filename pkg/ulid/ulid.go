package ulid

import (
	"database/sql/driver"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	// EncodedSize is the length of the canonical text form.
	EncodedSize = 26

	// BinarySize is the length of the raw binary form.
	BinarySize = 16

	// MaxTimestamp is the largest millisecond timestamp a ULID can carry
	// (48 bits, valid until roughly year 10889).
	MaxTimestamp = uint64(1)<<48 - 1

	// Alphabet is the Crockford Base32 character set. I, L, O and U are
	// excluded and are never accepted on decode.
	Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
)

// ULID is a 128-bit, lexicographically sortable identifier: 6 bytes of
// big-endian millisecond timestamp followed by 10 bytes of randomness.
type ULID [BinarySize]byte

// Zero is the zero-value ULID; it encodes as 26 '0' characters.
var Zero ULID

// decodeMap maps ASCII bytes to their 5-bit values; 0xFF marks characters
// outside the alphabet. Lowercase input decodes as its uppercase form.
var decodeMap = func() (m [256]byte) {
	for i := range m {
		m[i] = 0xFF
	}
	for i := 0; i < len(Alphabet); i++ {
		c := Alphabet[i]
		m[c] = byte(i)
		if c >= 'A' && c <= 'Z' {
			m[c+'a'-'A'] = byte(i)
		}
	}
	return m
}()

// String returns the canonical 26-character uppercase text form.
//
// 128 bits do not divide evenly into 5-bit groups, so the first character
// carries only the top 3 bits of the timestamp; the remaining 25 characters
// cover 125 bits. The layout below is the fixed ULID framing, not a generic
// Base32 of the byte string.
func (u ULID) String() string {
	var out [EncodedSize]byte

	// 48-bit timestamp -> 10 characters.
	out[0] = Alphabet[(u[0]&224)>>5]
	out[1] = Alphabet[u[0]&31]
	out[2] = Alphabet[(u[1]&248)>>3]
	out[3] = Alphabet[((u[1]&7)<<2)|((u[2]&192)>>6)]
	out[4] = Alphabet[(u[2]&62)>>1]
	out[5] = Alphabet[((u[2]&1)<<4)|((u[3]&240)>>4)]
	out[6] = Alphabet[((u[3]&15)<<1)|((u[4]&128)>>7)]
	out[7] = Alphabet[(u[4]&124)>>2]
	out[8] = Alphabet[((u[4]&3)<<3)|((u[5]&224)>>5)]
	out[9] = Alphabet[u[5]&31]

	// 80-bit randomness -> 16 characters.
	out[10] = Alphabet[(u[6]&248)>>3]
	out[11] = Alphabet[((u[6]&7)<<2)|((u[7]&192)>>6)]
	out[12] = Alphabet[(u[7]&62)>>1]
	out[13] = Alphabet[((u[7]&1)<<4)|((u[8]&240)>>4)]
	out[14] = Alphabet[((u[8]&15)<<1)|((u[9]&128)>>7)]
	out[15] = Alphabet[(u[9]&124)>>2]
	out[16] = Alphabet[((u[9]&3)<<3)|((u[10]&224)>>5)]
	out[17] = Alphabet[u[10]&31]
	out[18] = Alphabet[(u[11]&248)>>3]
	out[19] = Alphabet[((u[11]&7)<<2)|((u[12]&192)>>6)]
	out[20] = Alphabet[(u[12]&62)>>1]
	out[21] = Alphabet[((u[12]&1)<<4)|((u[13]&240)>>4)]
	out[22] = Alphabet[((u[13]&15)<<1)|((u[14]&128)>>7)]
	out[23] = Alphabet[(u[14]&124)>>2]
	out[24] = Alphabet[((u[14]&3)<<3)|((u[15]&224)>>5)]
	out[25] = Alphabet[u[15]&31]

	return string(out[:])
}

// Parse decodes the canonical text form. It accepts lowercase input but is
// otherwise strict: length must be exactly 26, every character must be in the
// alphabet (I, L, O, U are rejected, never corrected to lookalikes), and the
// first character must not imply a timestamp above 48 bits.
func Parse(s string) (ULID, error) {
	if len(s) != EncodedSize {
		return Zero, fmt.Errorf("%w: expected %d characters, got %d", ErrInvalidLength, EncodedSize, len(s))
	}

	var v [EncodedSize]byte
	for i := 0; i < EncodedSize; i++ {
		d := decodeMap[s[i]]
		if d == 0xFF {
			return Zero, fmt.Errorf("%w: %q at position %d", ErrInvalidCharacter, s[i], i)
		}
		v[i] = d
	}

	// The first character carries bits 127..125; anything above '7' would
	// overflow the 48-bit timestamp field.
	if v[0] > 7 {
		return Zero, fmt.Errorf("%w: first character %q overflows 48-bit timestamp", ErrTimestampRange, s[0])
	}

	var u ULID
	u[0] = v[0]<<5 | v[1]
	u[1] = v[2]<<3 | v[3]>>2
	u[2] = v[3]<<6 | v[4]<<1 | v[5]>>4
	u[3] = v[5]<<4 | v[6]>>1
	u[4] = v[6]<<7 | v[7]<<2 | v[8]>>3
	u[5] = v[8]<<5 | v[9]
	u[6] = v[10]<<3 | v[11]>>2
	u[7] = v[11]<<6 | v[12]<<1 | v[13]>>4
	u[8] = v[13]<<4 | v[14]>>1
	u[9] = v[14]<<7 | v[15]<<2 | v[16]>>3
	u[10] = v[16]<<5 | v[17]
	u[11] = v[18]<<3 | v[19]>>2
	u[12] = v[19]<<6 | v[20]<<1 | v[21]>>4
	u[13] = v[21]<<4 | v[22]>>1
	u[14] = v[22]<<7 | v[23]<<2 | v[24]>>3
	u[15] = v[24]<<5 | v[25]
	return u, nil
}

// MustParse is Parse that panics on error.
func MustParse(s string) ULID {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// FromBytes builds a ULID from a 16-byte binary form.
func FromBytes(b []byte) (ULID, error) {
	if len(b) != BinarySize {
		return Zero, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSize, BinarySize, len(b))
	}
	var u ULID
	copy(u[:], b)
	return u, nil
}

// Bytes returns the raw 16-byte representation.
func (u ULID) Bytes() []byte {
	b := make([]byte, BinarySize)
	copy(b, u[:])
	return b
}

// Timestamp returns the millisecond timestamp component.
func (u ULID) Timestamp() uint64 {
	return uint64(u[0])<<40 | uint64(u[1])<<32 | uint64(u[2])<<24 |
		uint64(u[3])<<16 | uint64(u[4])<<8 | uint64(u[5])
}

// Time returns the timestamp component as a time.Time in UTC.
func (u ULID) Time() time.Time {
	return time.UnixMilli(int64(u.Timestamp())).UTC()
}

// MaxTime returns the latest instant a ULID timestamp can represent,
// around the year 10889.
func MaxTime() time.Time {
	return time.UnixMilli(int64(MaxTimestamp)).UTC()
}

// Randomness returns the 10-byte randomness component.
func (u ULID) Randomness() [10]byte {
	var r [10]byte
	copy(r[:], u[6:])
	return r
}

// RandomnessHex returns the randomness component as lowercase hex.
func (u ULID) RandomnessHex() string {
	return hex.EncodeToString(u[6:])
}

// Compare returns -1, 0, 1 based on byte-wise comparison, which matches
// lexicographic ordering of the text form.
func (u ULID) Compare(other ULID) int {
	for i := 0; i < BinarySize; i++ {
		if u[i] < other[i] {
			return -1
		}
		if u[i] > other[i] {
			return 1
		}
	}
	return 0
}

// Equal reports whether two ULIDs are identical.
func (u ULID) Equal(other ULID) bool { return u == other }

// IsZero reports whether the ULID is the zero value.
func (u ULID) IsZero() bool { return u == Zero }

// Components is the decomposed view of a parsed ULID.
type Components struct {
	ULID          string `json:"ulid"`
	TimestampMs   uint64 `json:"timestamp_ms"`
	RandomnessHex string `json:"randomness_hex"`
	Valid         bool   `json:"valid"`
}

// ParseComponents decodes text and returns its components. The returned
// Components carries the canonical uppercase form, not the raw input.
func ParseComponents(s string) (Components, error) {
	u, err := Parse(s)
	if err != nil {
		return Components{}, err
	}
	return Components{
		ULID:          u.String(),
		TimestampMs:   u.Timestamp(),
		RandomnessHex: u.RandomnessHex(),
		Valid:         true,
	}, nil
}

// MarshalText implements encoding.TextMarshaler.
func (u ULID) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *ULID) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// MarshalJSON encodes the ULID as a JSON string.
func (u ULID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + u.String() + `"`), nil
}

// UnmarshalJSON decodes a JSON string into the ULID.
func (u *ULID) UnmarshalJSON(b []byte) error {
	if len(b) != EncodedSize+2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("%w: expected %d-character JSON string", ErrInvalidLength, EncodedSize)
	}
	return u.UnmarshalText(b[1 : len(b)-1])
}

// Value implements driver.Valuer for SQL storage as text.
func (u ULID) Value() (driver.Value, error) {
	return u.String(), nil
}

// Scan implements sql.Scanner for text or binary columns.
func (u *ULID) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*u = Zero
		return nil
	case string:
		return u.UnmarshalText([]byte(v))
	case []byte:
		if len(v) == BinarySize {
			copy(u[:], v)
			return nil
		}
		return u.UnmarshalText(v)
	default:
		return fmt.Errorf("ulid: cannot scan %T", value)
	}
}
