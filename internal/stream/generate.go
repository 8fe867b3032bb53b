package stream

import (
	"context"
	"fmt"
	"time"

	"github.com/nushell-works/ulidkit/pkg/log"
	"github.com/nushell-works/ulidkit/pkg/ulid"
)

// GenerateOptions configures a streaming generation job. Generation is
// per-item cheap and inherently ordered, so jobs run sequentially; batching
// exists for bounded memory accounting and cancellation granularity.
type GenerateOptions struct {
	// BatchSize bounds one batch (1..10000, default 1000).
	BatchSize int
	// TimestampMs pins every identifier to this base timestamp instead of
	// the wall clock. Negative means wall clock.
	TimestampMs int64
	// UniqueTimestamps advances the base timestamp by one millisecond per
	// identifier. Only meaningful with TimestampMs >= 0.
	UniqueTimestamps bool
	// Monotonic threads a single monotonic context through the job so the
	// output sorts strictly increasing even within one millisecond.
	// Combines with TimestampMs >= 0, which pins the base millisecond.
	Monotonic bool
	// ContinueOnError records generation failures and keeps going.
	ContinueOnError bool
	// MaxErrors aborts once this many failures accumulate; 0 is unlimited.
	MaxErrors int
	// ErrorDetailCap bounds the per-item error list (default 100).
	ErrorDetailCap int
}

// GenerateOutcome is the result of a generation job. IDs holds one slot per
// requested identifier; slots the job never reached stay zero.
type GenerateOutcome struct {
	State   State
	IDs     []ulid.ULID
	Summary Summary
}

// Generate produces count identifiers in batches, honoring cancellation at
// batch granularity. Counts above MaxStreamGeneration are rejected before any
// work starts.
func (p *Processor) Generate(ctx context.Context, count int, opts GenerateOptions) (*GenerateOutcome, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: count must not be negative", ErrCountTooLarge)
	}
	if count > MaxStreamGeneration {
		return nil, fmt.Errorf("%w: %d > %d", ErrCountTooLarge, count, MaxStreamGeneration)
	}
	if opts.BatchSize == 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.BatchSize < MinBatchSize || opts.BatchSize > MaxBatchSize {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrBadBatchSize, opts.BatchSize, MinBatchSize, MaxBatchSize)
	}
	if opts.ErrorDetailCap == 0 {
		opts.ErrorDetailCap = DefaultErrorDetail
	}

	out := &GenerateOutcome{
		State:   Running,
		IDs:     make([]ulid.ULID, count),
		Summary: Summary{Submitted: count},
	}
	var mono ulid.Monotonic
	nextTs := opts.TimestampMs

	spans := partition(count, opts.BatchSize)
	start := time.Now()
	aborted := false

batches:
	for bi, sp := range spans {
		select {
		case <-ctx.Done():
			aborted = true
			break batches
		default:
		}
		p.logProgress(bi, len(spans))

		for i := sp.start; i < sp.end; i++ {
			u, err := p.generateOne(&mono, &nextTs, opts)
			out.Summary.Processed++
			if err != nil {
				out.Summary.Failures++
				if len(out.Summary.Errors) < opts.ErrorDetailCap {
					out.Summary.Errors = append(out.Summary.Errors, ItemError{Index: i, Err: err.Error()})
				}
				if !opts.ContinueOnError || (opts.MaxErrors > 0 && out.Summary.Failures >= opts.MaxErrors) {
					aborted = true
					break batches
				}
				continue
			}
			out.IDs[i] = u
			out.Summary.Successes++
		}
	}

	out.Summary.Elapsed = time.Since(start)
	if secs := out.Summary.Elapsed.Seconds(); secs > 0 {
		out.Summary.RatePerSec = float64(out.Summary.Processed) / secs
	}
	out.Summary.Aborted = aborted
	if aborted {
		out.State = Aborted
	} else {
		out.State = Completed
	}

	if p.logger != nil {
		p.logger.Debug("generation job finished",
			log.Str("state", out.State.String()),
			log.Int("generated", out.Summary.Successes),
			log.Dur("elapsed", out.Summary.Elapsed),
		)
	}

	return out, nil
}

func (p *Processor) generateOne(mono *ulid.Monotonic, nextTs *int64, opts GenerateOptions) (ulid.ULID, error) {
	switch {
	case opts.TimestampMs >= 0:
		var u ulid.ULID
		var err error
		// A pinned timestamp combines with Monotonic: the base millisecond
		// is fixed and the randomness keeps strict order within it.
		if opts.Monotonic {
			u, err = p.gen.NewMonotonicAt(*nextTs, mono)
		} else {
			u, err = p.gen.NewAt(*nextTs)
		}
		if err != nil {
			return ulid.Zero, err
		}
		if opts.UniqueTimestamps {
			*nextTs++
		}
		return u, nil
	case opts.Monotonic:
		return p.gen.NewMonotonic(mono)
	default:
		return p.gen.New()
	}
}
