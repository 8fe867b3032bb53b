package ulid

import (
	"bytes"
	"errors"
	"testing"
)

// fixedClock returns a WithNow option pinned to ms.
func fixedClock(ms int64) Option {
	return WithNow(func() int64 { return ms })
}

func TestNewUsesClockAndEntropy(t *testing.T) {
	entropy := bytes.NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	g := NewGenerator(fixedClock(1465824320894), WithEntropy(entropy))

	u, err := g.New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if u.Timestamp() != 1465824320894 {
		t.Fatalf("timestamp: got %d", u.Timestamp())
	}
	r := u.Randomness()
	if !bytes.Equal(r[:], []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}) {
		t.Fatalf("randomness: got %x", r)
	}
}

func TestNewAtRejectsOutOfRange(t *testing.T) {
	g := NewGenerator()
	if _, err := g.NewAt(-1); !errors.Is(err, ErrTimestampRange) {
		t.Fatalf("negative: want ErrTimestampRange, got %v", err)
	}
	if _, err := g.NewAt(int64(MaxTimestamp) + 1); !errors.Is(err, ErrTimestampRange) {
		t.Fatalf("overflow: want ErrTimestampRange, got %v", err)
	}
	if _, err := g.NewAt(int64(MaxTimestamp)); err != nil {
		t.Fatalf("max: %v", err)
	}
}

func TestMonotonicSameMillisecondIncrements(t *testing.T) {
	g := NewGenerator(fixedClock(5000))
	var m Monotonic

	a, err := g.NewMonotonic(&m)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	b, err := g.NewMonotonic(&m)
	if err != nil {
		t.Fatalf("second: %v", err)
	}

	if a.Compare(b) != -1 {
		t.Fatalf("want a<b, got a=%s b=%s", a, b)
	}
	// Randomness must differ by exactly one as an 80-bit big-endian integer.
	ra, rb := a.Randomness(), b.Randomness()
	inc := ra
	if !increment(inc[:]) {
		t.Fatalf("unexpected overflow in test fixture")
	}
	if inc != rb {
		t.Fatalf("randomness delta != 1: a=%x b=%x", ra, rb)
	}
}

func TestMonotonicAdvancingClockIsFresh(t *testing.T) {
	ms := int64(1000)
	g := NewGenerator(WithNow(func() int64 { return ms }))
	var m Monotonic

	a, _ := g.NewMonotonic(&m)
	ms = 2000
	b, err := g.NewMonotonic(&m)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !(a.String() < b.String()) {
		t.Fatalf("ordering lost across milliseconds")
	}
	if b.Timestamp() != 2000 {
		t.Fatalf("timestamp: got %d", b.Timestamp())
	}
}

func TestMonotonicOverflowFailsHard(t *testing.T) {
	// Entropy of all 0xFF puts the context one step from the domain edge.
	g := NewGenerator(fixedClock(1000), WithEntropy(bytes.NewReader(bytes.Repeat([]byte{0xFF}, 10))))
	var m Monotonic

	if _, err := g.NewMonotonic(&m); err != nil {
		t.Fatalf("prime: %v", err)
	}
	_, err := g.NewMonotonic(&m)
	if !errors.Is(err, ErrMonotonicOverflow) {
		t.Fatalf("want ErrMonotonicOverflow, got %v", err)
	}
	// The context must not have advanced the timestamp to mask the overflow.
	lastMs, _, _ := m.Last()
	if lastMs != 1000 {
		t.Fatalf("timestamp advanced on overflow: %d", lastMs)
	}
}

func TestMonotonicClockRegressionRejected(t *testing.T) {
	ms := int64(2000)
	g := NewGenerator(WithNow(func() int64 { return ms }))
	var m Monotonic

	if _, err := g.NewMonotonic(&m); err != nil {
		t.Fatalf("prime: %v", err)
	}
	ms = 1500
	if _, err := g.NewMonotonic(&m); !errors.Is(err, ErrClockRegression) {
		t.Fatalf("want ErrClockRegression, got %v", err)
	}
	// A fresh context accepts the regressed clock.
	var fresh Monotonic
	if _, err := g.NewMonotonic(&fresh); err != nil {
		t.Fatalf("fresh context: %v", err)
	}
}

func TestMonotonicSequenceSortsLexicographically(t *testing.T) {
	ms := int64(3000)
	g := NewGenerator(WithNow(func() int64 { return ms }))
	var m Monotonic

	prev, err := g.NewMonotonic(&m)
	if err != nil {
		t.Fatalf("prime: %v", err)
	}
	for i := 0; i < 200; i++ {
		if i%50 == 49 {
			ms++
		}
		next, err := g.NewMonotonic(&m)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if !(prev.String() < next.String()) {
			t.Fatalf("step %d: %s !< %s", i, prev, next)
		}
		prev = next
	}
}

func TestNewBulk(t *testing.T) {
	g := NewGenerator()
	ids, err := g.NewBulk(10)
	if err != nil {
		t.Fatalf("bulk: %v", err)
	}
	if len(ids) != 10 {
		t.Fatalf("want 10, got %d", len(ids))
	}
	seen := make(map[ULID]bool, len(ids))
	for _, u := range ids {
		if seen[u] {
			t.Fatalf("duplicate in bulk output: %s", u)
		}
		seen[u] = true
	}
}

func TestNewBulkLimit(t *testing.T) {
	g := NewGenerator()
	if _, err := g.NewBulk(MaxBulkGeneration + 1); !errors.Is(err, ErrBatchLimit) {
		t.Fatalf("want ErrBatchLimit, got %v", err)
	}
	if _, err := g.NewBulk(-1); !errors.Is(err, ErrBatchLimit) {
		t.Fatalf("negative: want ErrBatchLimit, got %v", err)
	}
	if ids, err := g.NewBulk(0); err != nil || len(ids) != 0 {
		t.Fatalf("zero: want empty, got %v %v", ids, err)
	}
}
