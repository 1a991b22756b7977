package store

import "errors"

// Sentinel errors returned by cache methods. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrProfileNotCached is returned when no record is stored for the
	// requested email.
	ErrProfileNotCached = errors.New("profile not cached")
)
