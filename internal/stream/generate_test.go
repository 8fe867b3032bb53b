package stream

import (
	"context"
	"errors"
	"testing"

	"github.com/nushell-works/ulidkit/pkg/ulid"
)

func TestGenerateCount(t *testing.T) {
	p := testProcessor()
	out, err := p.Generate(context.Background(), 2500, GenerateOptions{BatchSize: 100, TimestampMs: -1})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out.State != Completed || out.Summary.Successes != 2500 {
		t.Fatalf("unexpected outcome: %s %+v", out.State, out.Summary)
	}
	seen := make(map[ulid.ULID]bool, len(out.IDs))
	for _, u := range out.IDs {
		if seen[u] {
			t.Fatalf("duplicate generated: %s", u)
		}
		seen[u] = true
	}
}

func TestGenerateCountLimit(t *testing.T) {
	p := testProcessor()
	if _, err := p.Generate(context.Background(), MaxStreamGeneration+1, GenerateOptions{TimestampMs: -1}); !errors.Is(err, ErrCountTooLarge) {
		t.Fatalf("want ErrCountTooLarge, got %v", err)
	}
	if _, err := p.Generate(context.Background(), -1, GenerateOptions{TimestampMs: -1}); !errors.Is(err, ErrCountTooLarge) {
		t.Fatalf("negative: want ErrCountTooLarge, got %v", err)
	}
}

func TestGeneratePinnedTimestamp(t *testing.T) {
	p := testProcessor()
	out, err := p.Generate(context.Background(), 10, GenerateOptions{TimestampMs: 1465824320894})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, u := range out.IDs {
		if u.Timestamp() != 1465824320894 {
			t.Fatalf("timestamp not pinned: %d", u.Timestamp())
		}
	}
}

func TestGenerateUniqueTimestamps(t *testing.T) {
	p := testProcessor()
	out, err := p.Generate(context.Background(), 5, GenerateOptions{TimestampMs: 1000, UniqueTimestamps: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for i, u := range out.IDs {
		if got := u.Timestamp(); got != uint64(1000+i) {
			t.Fatalf("id %d: want ts %d, got %d", i, 1000+i, got)
		}
	}
}

func TestGenerateMonotonicOrdering(t *testing.T) {
	gen := ulid.NewGenerator(ulid.WithNow(func() int64 { return 42 }))
	p := New(gen)
	out, err := p.Generate(context.Background(), 100, GenerateOptions{TimestampMs: -1, Monotonic: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for i := 1; i < len(out.IDs); i++ {
		if !(out.IDs[i-1].String() < out.IDs[i].String()) {
			t.Fatalf("ordering lost at %d: %s !< %s", i, out.IDs[i-1], out.IDs[i])
		}
	}
}

func TestGeneratePinnedTimestampMonotonic(t *testing.T) {
	p := testProcessor()
	out, err := p.Generate(context.Background(), 50, GenerateOptions{
		TimestampMs: 1465824320894,
		Monotonic:   true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for i, u := range out.IDs {
		if got := u.Timestamp(); got != 1465824320894 {
			t.Fatalf("id %d: want pinned ts, got %d", i, got)
		}
		if i > 0 && out.IDs[i].Compare(out.IDs[i-1]) <= 0 {
			t.Fatalf("ordering lost at %d: %s <= %s", i, out.IDs[i], out.IDs[i-1])
		}
	}
}

func TestGenerateCancellation(t *testing.T) {
	p := testProcessor()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := p.Generate(ctx, 1000, GenerateOptions{BatchSize: 100, TimestampMs: -1})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out.State != Aborted || out.Summary.Processed != 0 {
		t.Fatalf("unexpected outcome: %s %+v", out.State, out.Summary)
	}
}

func TestGenerateBadBatchSize(t *testing.T) {
	p := testProcessor()
	if _, err := p.Generate(context.Background(), 10, GenerateOptions{BatchSize: -3, TimestampMs: -1}); !errors.Is(err, ErrBadBatchSize) {
		t.Fatalf("want ErrBadBatchSize, got %v", err)
	}
}

func TestGenerateTimestampRangeFailure(t *testing.T) {
	p := testProcessor()
	out, err := p.Generate(context.Background(), 3, GenerateOptions{
		TimestampMs:      int64(ulid.MaxTimestamp), // overflows on the second id
		UniqueTimestamps: true,
		ContinueOnError:  true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out.Summary.Successes != 1 || out.Summary.Failures != 2 {
		t.Fatalf("unexpected accounting: %+v", out.Summary)
	}
	if out.State != Completed {
		t.Fatalf("tolerant job must complete, got %s", out.State)
	}
}
