// Package cmd contains the Cobra CLI commands for ulidkit. Commands are thin
// glue: they parse flags, call into pkg/ulid and internal/stream, and print
// plain values or JSON records.
package cmd
