package ratelimiter

import "time"

// Result contains the outcome of a rate limit check.
type Result struct {
	Limit     int       // bucket capacity
	Remaining int       // tokens left; negative when the request was denied
	ResetAt   time.Time // next refill
}

// Allowed reports whether the request was admitted.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait before retrying, or 0 if allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(0, time.Until(r.ResetAt))
}

// Config defines a token bucket. It is usually embedded into the app config
// with an envPrefix, e.g. RATELIMIT_SUBMIT_CAPACITY.
type Config struct {
	Capacity       int           `env:"CAPACITY" envDefault:"5"`
	RefillRate     int           `env:"REFILL_RATE" envDefault:"1"`
	RefillInterval time.Duration `env:"REFILL_INTERVAL" envDefault:"1m"`
}

// ttl is how long an untouched bucket needs to refill completely.
func (c Config) ttl() time.Duration {
	intervals := (c.Capacity + c.RefillRate - 1) / c.RefillRate
	return time.Duration(intervals+1) * c.RefillInterval
}
