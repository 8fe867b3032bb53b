// Package stream applies ULID operations across large collections with
// bounded batches, optional parallel dispatch, and partial-failure tolerance.
//
// # Jobs
//
// Each call builds a job that moves Pending -> Running -> Completed or
// Aborted. Input is split into batches of a configured size; batches run
// sequentially or on a bounded worker pool. Every batch carries its input
// offset and writes results into a preallocated indexed slice, so output
// order always equals input order regardless of completion order.
//
// # Failure tolerance
//
// Item failures are recorded, never thrown. With ContinueOnError the job
// keeps going until MaxErrors trips the abort path; without it the first
// failure aborts. External cancellation via context uses the same path:
// in-flight batches finish, no new batches start, and the summary reports
// what was processed.
//
// Example:
//
//	p := stream.New(ulid.NewGenerator())
//	out, err := p.Process(ctx, stream.OpValidate, items, stream.Options{
//		BatchSize:       500,
//		Parallel:        true,
//		ContinueOnError: true,
//	})
//	// out.Summary.Successes + out.Summary.Failures == out.Summary.Processed
package stream
