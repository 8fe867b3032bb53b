package stream

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/nushell-works/ulidkit/pkg/log"
	"github.com/nushell-works/ulidkit/pkg/ulid"
)

// Processor runs stream jobs against a shared Generator. The generator's
// default entropy source (crypto/rand) is safe for concurrent sampling, so
// one Processor serves parallel jobs; callers injecting a non-concurrent
// entropy reader must keep jobs sequential.
type Processor struct {
	gen    *ulid.Generator
	logger log.Logger
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithLogger enables progress and outcome logging for large jobs.
func WithLogger(l log.Logger) ProcessorOption {
	return func(p *Processor) { p.logger = l }
}

// New creates a Processor backed by gen.
func New(gen *ulid.Generator, opts ...ProcessorOption) *Processor {
	p := &Processor{gen: gen}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// span is one batch: the half-open input range [start, end).
type span struct {
	start, end int
}

// job is the per-call accumulation structure. Results are written into
// disjoint index ranges by whichever worker owns the batch; the mutex guards
// only the merged counters.
type job struct {
	mu       sync.Mutex
	state    State
	results  []Result
	summary  Summary
	detail   int
	maxErr   int
	stopFail bool // abort on first failure (ContinueOnError unset)
	aborted  bool
}

func (j *job) isAborted() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.aborted
}

func (j *job) abort() {
	j.mu.Lock()
	j.aborted = true
	j.mu.Unlock()
}

// merge folds one batch's counts into the job and trips the abort flag when
// the failure policy says so.
func (j *job) merge(processed, successes, failures, matched int, errs []ItemError) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.summary.Processed += processed
	j.summary.Successes += successes
	j.summary.Failures += failures
	j.summary.Matched += matched
	for _, e := range errs {
		if len(j.summary.Errors) < j.detail {
			j.summary.Errors = append(j.summary.Errors, e)
		}
	}
	if failures > 0 && j.stopFail {
		j.aborted = true
	}
	if j.maxErr > 0 && j.summary.Failures >= j.maxErr {
		j.aborted = true
	}
}

// normalize validates Options and fills defaults. Configuration problems are
// reported here, before any processing begins.
func (o Options) normalize() (Options, error) {
	if o.BatchSize == 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.BatchSize < MinBatchSize || o.BatchSize > MaxBatchSize {
		return o, fmt.Errorf("%w: %d not in [%d, %d]", ErrBadBatchSize, o.BatchSize, MinBatchSize, MaxBatchSize)
	}
	if o.Workers == 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Workers < 0 {
		return o, fmt.Errorf("%w: %d", ErrBadWorkerCount, o.Workers)
	}
	if o.ErrorDetailCap == 0 {
		o.ErrorDetailCap = DefaultErrorDetail
	}
	if o.Strict && o.StrictMaxMs <= 0 {
		o.StrictMaxMs = time.Now().UnixMilli()
	}
	return o, nil
}

// Process applies op to every item with the configured batching, parallelism,
// and failure tolerance. The returned error covers configuration problems
// only; item failures live in the Outcome.
func (p *Processor) Process(ctx context.Context, op Operation, items []string, opts Options) (*Outcome, error) {
	if !op.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	filter, err := compileFilter(opts.Filter)
	if err != nil {
		return nil, fmt.Errorf("stream: compile filter: %w", err)
	}

	j := &job{
		state:    Pending,
		results:  make([]Result, len(items)),
		summary:  Summary{Submitted: len(items)},
		detail:   opts.ErrorDetailCap,
		maxErr:   opts.MaxErrors,
		stopFail: !opts.ContinueOnError,
	}

	spans := partition(len(items), opts.BatchSize)
	start := time.Now()
	j.state = Running

	if opts.Parallel && len(spans) > 1 {
		p.runParallel(ctx, j, spans, op, items, opts, filter)
	} else {
		p.runSequential(ctx, j, spans, op, items, opts, filter)
	}

	j.summary.Elapsed = time.Since(start)
	if secs := j.summary.Elapsed.Seconds(); secs > 0 {
		j.summary.RatePerSec = float64(j.summary.Processed) / secs
	}
	j.summary.Aborted = j.aborted
	if j.aborted {
		j.state = Aborted
	} else {
		j.state = Completed
	}

	if p.logger != nil {
		p.logger.Debug("stream job finished",
			log.Str("op", string(op)),
			log.Str("state", j.state.String()),
			log.Int("processed", j.summary.Processed),
			log.Int("failures", j.summary.Failures),
			log.Dur("elapsed", j.summary.Elapsed),
		)
	}

	return &Outcome{State: j.state, Results: j.results, Summary: j.summary}, nil
}

func (p *Processor) runSequential(ctx context.Context, j *job, spans []span, op Operation, items []string, opts Options, filter itemFilter) {
	for i, sp := range spans {
		if j.isAborted() {
			return
		}
		select {
		case <-ctx.Done():
			j.abort()
			return
		default:
		}
		p.runBatch(j, sp, op, items, opts, filter)
		p.logProgress(i, len(spans))
	}
}

func (p *Processor) runParallel(ctx context.Context, j *job, spans []span, op Operation, items []string, opts Options, filter itemFilter) {
	batches := make(chan span)
	var wg sync.WaitGroup
	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sp := range batches {
				// A batch pulled after abort is dropped, not processed.
				if j.isAborted() {
					continue
				}
				p.runBatch(j, sp, op, items, opts, filter)
			}
		}()
	}

dispatch:
	for i, sp := range spans {
		if j.isAborted() {
			break
		}
		select {
		case <-ctx.Done():
			j.abort()
			break dispatch
		case batches <- sp:
			p.logProgress(i, len(spans))
		}
	}
	close(batches)
	wg.Wait()
}

// runBatch processes one span and merges its counts. Results are written
// straight into the job's indexed slice, which is what preserves input order
// under parallel execution.
func (p *Processor) runBatch(j *job, sp span, op Operation, items []string, opts Options, filter itemFilter) {
	var processed, successes, failures, matched int
	var errs []ItemError

	for i := sp.start; i < sp.end; i++ {
		r := processItem(op, i, items[i], opts, filter)
		j.results[i] = r
		processed++
		if r.Err != nil {
			failures++
			errs = append(errs, ItemError{Index: i, Input: r.Input, Err: r.Err.Error()})
			if !opts.ContinueOnError {
				break
			}
			continue
		}
		successes++
		if r.Match {
			matched++
		}
	}

	j.merge(processed, successes, failures, matched, errs)
}

// processItem is the independent per-item computation: it returns a tagged
// result and never panics or throws past this frame.
func processItem(op Operation, idx int, in string, opts Options, filter itemFilter) Result {
	r := Result{Index: idx, Input: in}

	u, perr := ulid.Parse(in)
	decoded := perr == nil

	switch op {
	case OpValidate:
		valid := decoded
		if valid && opts.Strict && u.Timestamp() > uint64(opts.StrictMaxMs) {
			valid = false
			perr = fmt.Errorf("%w: timestamp %dms exceeds bound %dms", ulid.ErrTimestampRange, u.Timestamp(), opts.StrictMaxMs)
		}
		r.Valid = valid
		if !valid {
			r.Err = perr
			return r
		}
	case OpParse:
		if !decoded {
			r.Err = perr
			return r
		}
		r.Valid = true
		r.Parsed = &ulid.Components{
			ULID:          u.String(),
			TimestampMs:   u.Timestamp(),
			RandomnessHex: u.RandomnessHex(),
			Valid:         true,
		}
	case OpExtractTimestamp:
		if !decoded {
			r.Err = perr
			return r
		}
		r.Valid = true
		r.TimestampMs = u.Timestamp()
	case OpTransform:
		if !decoded {
			r.Err = perr
			return r
		}
		r.Valid = true
		r.Output = u.String()
	}

	r.Match = filter.Eval(in, u, decoded)
	return r
}

// partition splits n items into spans of at most size items.
func partition(n, size int) []span {
	if n == 0 {
		return nil
	}
	spans := make([]span, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		spans = append(spans, span{start: start, end: end})
	}
	return spans
}

// logProgress emits coarse progress for large jobs, roughly every tenth of
// the batch count.
func (p *Processor) logProgress(batch, total int) {
	if p.logger == nil || total <= 10 {
		return
	}
	step := total / 10
	if step == 0 || batch%step != 0 {
		return
	}
	p.logger.Debug("stream progress",
		log.Int("batch", batch+1),
		log.Int("total", total),
	)
}
