// Package ratelimiter implements a token bucket limiter with in-memory and
// redis stores plus an HTTP middleware.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       5,
//		RefillRate:     1,
//		RefillInterval: time.Minute,
//	})
//
//	r.With(ratelimiter.Middleware(bucket, ratelimiter.Composite(
//		ratelimiter.Static("submit"),
//		ratelimiter.ClientIP("X-Forwarded-For"),
//	))).Post("/", submit)
//
// A denied request does not consume tokens. The middleware sets the
// X-RateLimit-Limit, X-RateLimit-Remaining and X-RateLimit-Reset headers on
// every checked response and Retry-After on rejections.
//
// RedisStore runs the same algorithm in a Lua script so that several
// instances share one budget.
package ratelimiter
