// Package timeconv converts between millisecond timestamps, time.Time, and
// the text forms accepted by the `ulidkit time` commands.
package timeconv

import (
	"fmt"
	"strconv"
	"time"
)

// NowMillis returns the current wall clock in milliseconds since the Unix
// epoch.
func NowMillis() int64 { return time.Now().UnixMilli() }

// FromMillis converts a millisecond timestamp to a UTC time.Time.
func FromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

// ToISO8601 renders a millisecond timestamp with millisecond precision and a
// Z suffix, matching the format ULID tooling conventionally prints.
func ToISO8601(ms int64) string {
	return FromMillis(ms).Format("2006-01-02T15:04:05.000Z")
}

// ParseFlexible accepts either an integer millisecond timestamp or an
// RFC3339 time string and returns milliseconds.
func ParseFlexible(s string) (int64, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UnixMilli(), nil
	}
	return 0, fmt.Errorf("timeconv: %q is neither milliseconds nor RFC3339", s)
}
