// Package clock abstracts time for record timestamps so tests can pin it.
package clock

import "time"

// Clock supplies the current time for created_at/updated_at fields.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock, UTC, truncated to seconds (consistent with
// how SQLite renders CURRENT_TIMESTAMP).
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// Fixed always returns the same instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }
