package domain

import "errors"

// Sentinel errors used across all layers.
//
// Lookup misses are normal control flow and are reported as ErrNotFound;
// persistence failures are never suppressed and always surface to the caller
// wrapped with the operation name and identifier.
var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrValidation       = errors.New("validation error")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrCacheWrite       = errors.New("cache write failed")
	ErrRemoteFetch      = errors.New("remote fetch failed")
)
