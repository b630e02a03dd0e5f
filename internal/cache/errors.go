package cache

import "errors"

// Sentinel errors shared by all cache implementations.
var (
	// ErrCacheMiss indicates the key is absent or expired.
	ErrCacheMiss = errors.New("cache: key not found")

	// ErrCacheUnavailable indicates the backend cannot be reached.
	ErrCacheUnavailable = errors.New("cache: backend unavailable")

	// ErrInvalidValue indicates a stored value that fails to decode.
	ErrInvalidValue = errors.New("cache: invalid value")
)
