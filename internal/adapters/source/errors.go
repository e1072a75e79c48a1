package source

import "errors"

// Sentinel error kinds for pool sources. Callers distinguish an unknown
// subject (empty result, not an error condition for ranking queries) from a
// source that could not be reached at all.
var (
	ErrNotFound    = errors.New("subject not found")
	ErrUnavailable = errors.New("pool source unavailable")
)
