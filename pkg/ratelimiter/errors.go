package ratelimiter

import "errors"

var (
	// ErrInvalidConfig indicates that the bucket configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidTokenCount indicates that the requested token count is invalid.
	ErrInvalidTokenCount = errors.New("invalid token count")

	// ErrStoreUnavailable wraps failures of the backing store.
	ErrStoreUnavailable = errors.New("store unavailable")
)
