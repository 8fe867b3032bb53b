package ulid

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"
)

// MaxBulkGeneration caps a single NewBulk request.
const MaxBulkGeneration = 10_000

// Generator produces ULIDs from an injected clock and entropy source. The
// zero configuration uses the system clock and crypto/rand, which is safe for
// concurrent sampling; generators sharing a non-concurrent entropy reader
// must not be used from multiple goroutines.
type Generator struct {
	now     func() int64
	entropy io.Reader
}

// Option configures a Generator.
type Option func(*Generator)

// WithNow overrides the millisecond clock. Tests use this for deterministic
// timestamps.
func WithNow(now func() int64) Option {
	return func(g *Generator) { g.now = now }
}

// WithEntropy overrides the randomness source. Tests use this for
// deterministic randomness.
func WithEntropy(r io.Reader) Option {
	return func(g *Generator) { g.entropy = r }
}

// NewGenerator creates a Generator with the given options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		now:     func() int64 { return time.Now().UnixMilli() },
		entropy: rand.Reader,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// New returns a ULID at the generator's current clock reading.
func (g *Generator) New() (ULID, error) {
	return g.NewAt(g.now())
}

// NewAt returns a ULID with the given millisecond timestamp and fresh
// randomness. It fails with ErrTimestampRange when ms is negative or above
// the 48-bit domain.
func (g *Generator) NewAt(ms int64) (ULID, error) {
	u, err := makeULID(ms)
	if err != nil {
		return Zero, err
	}
	if _, err := io.ReadFull(g.entropy, u[6:]); err != nil {
		return Zero, fmt.Errorf("ulid: read entropy: %w", err)
	}
	return u, nil
}

// NewBulk returns count ULIDs at the current clock reading. Requests above
// MaxBulkGeneration fail with ErrBatchLimit.
func (g *Generator) NewBulk(count int) ([]ULID, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: count must not be negative", ErrBatchLimit)
	}
	if count > MaxBulkGeneration {
		return nil, fmt.Errorf("%w: at most %d per request", ErrBatchLimit, MaxBulkGeneration)
	}
	out := make([]ULID, 0, count)
	for i := 0; i < count; i++ {
		u, err := g.New()
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

// Monotonic tracks the last emitted ULID so that identifiers produced within
// the same millisecond remain strictly increasing. The internal mutex makes
// individual calls safe, but interleaved callers still race for order; give
// each unit of concurrency its own context, or serialize access externally.
type Monotonic struct {
	mu       sync.Mutex
	lastMs   int64
	lastRand [10]byte
	primed   bool
}

// Last returns the context's last observed millisecond timestamp and
// randomness, and whether any ULID has been recorded yet.
func (m *Monotonic) Last() (ms int64, random [10]byte, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastMs, m.lastRand, m.primed
}

// NewMonotonic returns a ULID at the current clock reading, keeping strict
// ordering against the context:
//   - later millisecond: fresh randomness, context updated;
//   - same millisecond: last randomness incremented by one as an 80-bit
//     big-endian integer, ErrMonotonicOverflow if the increment carries out
//     of the domain (the timestamp is never advanced silently);
//   - earlier millisecond: ErrClockRegression.
func (g *Generator) NewMonotonic(m *Monotonic) (ULID, error) {
	return g.NewMonotonicAt(g.now(), m)
}

// NewMonotonicAt is NewMonotonic with an explicit millisecond timestamp.
func (g *Generator) NewMonotonicAt(ms int64, m *Monotonic) (ULID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.primed || ms > m.lastMs {
		u, err := g.NewAt(ms)
		if err != nil {
			return Zero, err
		}
		m.lastMs = ms
		copy(m.lastRand[:], u[6:])
		m.primed = true
		return u, nil
	}

	if ms < m.lastMs {
		return Zero, fmt.Errorf("%w: now=%dms last=%dms", ErrClockRegression, ms, m.lastMs)
	}

	u, err := makeULID(ms)
	if err != nil {
		return Zero, err
	}
	copy(u[6:], m.lastRand[:])
	if !increment(u[6:]) {
		return Zero, ErrMonotonicOverflow
	}
	copy(m.lastRand[:], u[6:])
	return u, nil
}

// makeULID validates ms against the 48-bit domain and writes it into the
// timestamp field of a fresh ULID.
func makeULID(ms int64) (ULID, error) {
	if ms < 0 || uint64(ms) > MaxTimestamp {
		return Zero, fmt.Errorf("%w: %d (max %d)", ErrTimestampRange, ms, MaxTimestamp)
	}
	var u ULID
	t := uint64(ms)
	u[0] = byte(t >> 40)
	u[1] = byte(t >> 32)
	u[2] = byte(t >> 24)
	u[3] = byte(t >> 16)
	u[4] = byte(t >> 8)
	u[5] = byte(t)
	return u, nil
}

// increment adds one to a big-endian integer in place, reporting false when
// the carry overflows the slice.
func increment(b []byte) bool {
	for i := len(b) - 1; i >= 0; i-- {
		b[i]++
		if b[i] != 0 {
			return true
		}
	}
	return false
}
