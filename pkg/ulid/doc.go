// Package ulid implements 128-bit, lexicographically sortable identifiers
// (ULIDs) with a bit-exact Crockford Base32 text form.
//
// # Format
//
// A ULID is 16 bytes big-endian: [6 bytes ms_timestamp][10 bytes randomness].
// The text form is always exactly 26 characters over the alphabet
// 0123456789ABCDEFGHJKMNPQRSTVWXYZ (I, L, O and U are never valid). Byte-wise
// and string-wise comparison both preserve chronological order.
//
// # Monotonicity
//
// A Generator paired with a Monotonic context keeps identifiers strictly
// increasing within a single millisecond by treating the 80-bit randomness as
// a big-endian counter:
//   - Same millisecond: randomness is incremented by one; if the increment
//     overflows 80 bits the call fails with ErrMonotonicOverflow rather than
//     silently advancing the timestamp.
//   - Clock regression: the call fails with ErrClockRegression; callers decide
//     whether to retry with a fresh context.
//
// A Monotonic context is safe for serialized use from one goroutine at a
// time. Callers needing concurrent monotonic generation must either guard a
// shared context themselves or give each worker its own.
//
// Usage
//
//	g := ulid.NewGenerator()
//	u, _ := g.New()
//	s := u.String()            // "01AN4Z07BY79KA1307SR9X4MV3"
//	back, _ := ulid.Parse(s)   // round-trips
//
//	var m ulid.Monotonic
//	a, _ := g.NewMonotonic(&m)
//	b, _ := g.NewMonotonic(&m) // a.String() < b.String()
//
// ULIDs are not security tokens: within a millisecond the randomness becomes
// a predictable counter under monotonic generation.
package ulid
