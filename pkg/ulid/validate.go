package ulid

import "fmt"

// Report is the exhaustive result of detailed validation. Every check runs
// even after an earlier one fails, so a caller can surface all problems at
// once.
type Report struct {
	Valid       bool     `json:"valid"`
	Length      int      `json:"length"`
	LengthOK    bool     `json:"length_ok"`
	CharsetOK   bool     `json:"charset_ok"`
	TimestampOK bool     `json:"timestamp_ok"`
	Errors      []string `json:"errors,omitempty"`
}

// Validate reports whether s is a structurally valid ULID: exactly 26
// characters, all in the alphabet, and a first character that fits the 48-bit
// timestamp field. It never panics on malformed input.
func Validate(s string) bool {
	if len(s) != EncodedSize {
		return false
	}
	for i := 0; i < EncodedSize; i++ {
		if decodeMap[s[i]] == 0xFF {
			return false
		}
	}
	return decodeMap[s[0]] <= 7
}

// ValidateStrict is Validate plus a decoded-timestamp upper bound, commonly
// "now", in milliseconds.
func ValidateStrict(s string, maxMs int64) bool {
	if !Validate(s) {
		return false
	}
	u, err := Parse(s)
	if err != nil {
		return false
	}
	return maxMs >= 0 && u.Timestamp() <= uint64(maxMs)
}

// ValidateDetailed runs every structural check on s and returns the full
// breakdown.
func ValidateDetailed(s string) Report {
	return validateDetailed(s, -1)
}

// ValidateDetailedStrict is ValidateDetailed plus a decoded-timestamp upper
// bound in milliseconds.
func ValidateDetailedStrict(s string, maxMs int64) Report {
	return validateDetailed(s, maxMs)
}

func validateDetailed(s string, maxMs int64) Report {
	r := Report{
		Valid:       true,
		Length:      len(s),
		LengthOK:    true,
		CharsetOK:   true,
		TimestampOK: true,
	}

	if len(s) != EncodedSize {
		r.Valid = false
		r.LengthOK = false
		r.Errors = append(r.Errors, fmt.Sprintf("invalid length: expected %d characters, got %d", EncodedSize, len(s)))
	}

	for i := 0; i < len(s); i++ {
		if decodeMap[s[i]] == 0xFF {
			r.Valid = false
			r.CharsetOK = false
			r.Errors = append(r.Errors, fmt.Sprintf("invalid character %q at position %d; valid characters: %s", s[i], i, Alphabet))
		}
	}

	// Timestamp checks only make sense once the string is structurally sound.
	if r.LengthOK && r.CharsetOK {
		if decodeMap[s[0]] > 7 {
			r.Valid = false
			r.TimestampOK = false
			r.Errors = append(r.Errors, fmt.Sprintf("first character %q overflows the 48-bit timestamp field", s[0]))
		} else if maxMs >= 0 {
			if u, err := Parse(s); err == nil && u.Timestamp() > uint64(maxMs) {
				r.Valid = false
				r.TimestampOK = false
				r.Errors = append(r.Errors, fmt.Sprintf("timestamp %dms exceeds bound %dms", u.Timestamp(), maxMs))
			}
		}
	}

	return r
}
