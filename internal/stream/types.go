package stream

import (
	"errors"
	"time"

	"github.com/nushell-works/ulidkit/pkg/ulid"
)

// Limits for a single streaming call.
const (
	DefaultBatchSize    = 1000
	MinBatchSize        = 1
	MaxBatchSize        = 10_000
	MaxStreamGeneration = 100_000
	DefaultErrorDetail  = 100
)

// Configuration errors, reported before any processing begins.
var (
	ErrUnknownOperation = errors.New("stream: unknown operation")
	ErrBadBatchSize     = errors.New("stream: batch size out of bounds")
	ErrBadWorkerCount   = errors.New("stream: worker count must be positive")
	ErrCountTooLarge    = errors.New("stream: generation count exceeds limit")
)

// Operation selects what a stream job does with each input item.
type Operation string

const (
	// OpValidate classifies each item; invalid items count as failures.
	OpValidate Operation = "validate"
	// OpParse decodes each item into components.
	OpParse Operation = "parse"
	// OpExtractTimestamp decodes each item and keeps only the timestamp.
	OpExtractTimestamp Operation = "extract-timestamp"
	// OpTransform canonicalizes each valid item to its uppercase form.
	OpTransform Operation = "transform"
)

func (o Operation) valid() bool {
	switch o {
	case OpValidate, OpParse, OpExtractTimestamp, OpTransform:
		return true
	}
	return false
}

// State is the lifecycle of a job.
type State int

const (
	Pending State = iota
	Running
	Completed
	Aborted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Aborted:
		return "aborted"
	}
	return "unknown"
}

// Options configures a Process call. The zero value gets usable defaults from
// normalize; out-of-bounds values are rejected up front.
type Options struct {
	// BatchSize bounds how many items one batch holds (1..10000, default 1000).
	BatchSize int
	// Parallel dispatches batches across a worker pool.
	Parallel bool
	// Workers sizes the pool; defaults to GOMAXPROCS when Parallel is set.
	Workers int
	// ContinueOnError records item failures and keeps going.
	ContinueOnError bool
	// MaxErrors aborts the job once this many failures accumulate;
	// 0 means unlimited. Only meaningful with ContinueOnError.
	MaxErrors int
	// Strict additionally bounds decoded timestamps by StrictMaxMs.
	Strict bool
	// StrictMaxMs is the strict upper bound in milliseconds. Ignored
	// unless Strict is set; a non-positive value means the wall clock at
	// job start.
	StrictMaxMs int64
	// Filter is an optional CEL expression evaluated against each
	// successfully decoded item; see Compile for the variable set.
	Filter string
	// ErrorDetailCap bounds the per-item error list kept in the summary
	// (default 100). Counts are always exact.
	ErrorDetailCap int
}

// Result is the tagged outcome for one input item. Index refers to the item's
// position in the submitted input.
type Result struct {
	Index int    `json:"index"`
	Input string `json:"input"`

	// Valid is the classification for OpValidate.
	Valid bool `json:"valid"`
	// Output is the canonical form for OpTransform.
	Output string `json:"output,omitempty"`
	// Parsed carries components for OpParse.
	Parsed *ulid.Components `json:"parsed,omitempty"`
	// TimestampMs carries the result of OpExtractTimestamp.
	TimestampMs uint64 `json:"timestamp_ms,omitempty"`
	// Match reports the filter verdict; always true when no filter is set.
	Match bool `json:"match"`

	Err error `json:"-"`
}

// ItemError is the capped per-item failure detail surfaced in a Summary.
type ItemError struct {
	Index int    `json:"index"`
	Input string `json:"input"`
	Err   string `json:"error"`
}

// Summary is the job-level accounting. Successes + Failures == Processed,
// and Processed <= Submitted with equality unless the job aborted.
type Summary struct {
	Submitted int           `json:"submitted"`
	Processed int           `json:"processed"`
	Successes int           `json:"successes"`
	Failures  int           `json:"failures"`
	Matched   int           `json:"matched"`
	Aborted   bool          `json:"aborted"`
	Elapsed   time.Duration `json:"elapsed"`
	// RatePerSec is items processed per second, for observability.
	RatePerSec float64     `json:"rate_per_sec"`
	Errors     []ItemError `json:"errors,omitempty"`
}

// Outcome bundles ordered per-item results with the job summary. The Results
// slice always has one slot per submitted item; slots belonging to batches
// that never ran (abort, cancellation) keep their zero value and are excluded
// from the counts.
type Outcome struct {
	State   State
	Results []Result
	Summary Summary
}
