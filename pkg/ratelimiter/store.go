package ratelimiter

import (
	"context"
	"time"
)

// Store persists bucket state.
type Store interface {
	// ConsumeTokens refills the bucket for key and takes tokens from it.
	// When the bucket holds fewer than tokens nothing is taken and the
	// returned remaining value is negative.
	ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (remaining int, resetAt time.Time, err error)

	// Reset clears the state for key.
	Reset(ctx context.Context, key string) error
}
