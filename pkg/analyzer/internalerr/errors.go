package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrNoText           = errors.New("no text extracted")
	ErrEmptyContent     = errors.New("no indexable terms")
	ErrEmptyQuery       = errors.New("no valid search terms")
	ErrStoreUnavailable = errors.New("store unavailable")
)
