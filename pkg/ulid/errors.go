package ulid

import "errors"

// Sentinel errors returned by codec, generator, and validator operations.
// All wrapped variants remain matchable with errors.Is.
var (
	// ErrInvalidLength reports text that is not exactly 26 characters.
	ErrInvalidLength = errors.New("ulid: invalid length")

	// ErrInvalidCharacter reports a symbol outside the Crockford Base32
	// alphabet. Wrapped instances carry the offending character and position.
	ErrInvalidCharacter = errors.New("ulid: invalid character")

	// ErrInvalidSize reports a binary input that is not exactly 16 bytes.
	ErrInvalidSize = errors.New("ulid: invalid binary size")

	// ErrTimestampRange reports a timestamp outside the 48-bit domain.
	ErrTimestampRange = errors.New("ulid: timestamp out of range")

	// ErrMonotonicOverflow reports an 80-bit randomness increment that
	// carried out of the domain within a single millisecond.
	ErrMonotonicOverflow = errors.New("ulid: monotonic randomness overflow")

	// ErrClockRegression reports a generation request with a timestamp
	// earlier than the monotonic context's last recorded one.
	ErrClockRegression = errors.New("ulid: clock moved backwards")

	// ErrBatchLimit reports a bulk request above the configured safety cap.
	ErrBatchLimit = errors.New("ulid: batch limit exceeded")
)
