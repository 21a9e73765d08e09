package ratelimiter

import (
	"net/http"
	"strconv"
)

type middlewareOptions struct {
	onLimited func(w http.ResponseWriter, r *http.Request, res *Result)
	onError   func(w http.ResponseWriter, r *http.Request, err error)
}

// MiddlewareOption customises Middleware responses.
type MiddlewareOption func(*middlewareOptions)

// WithLimitedHandler renders the response for rejected requests.
// Rate limit headers are already set when it runs.
func WithLimitedHandler(fn func(w http.ResponseWriter, r *http.Request, res *Result)) MiddlewareOption {
	return func(o *middlewareOptions) { o.onLimited = fn }
}

// WithErrorHandler renders the response when the store fails.
func WithErrorHandler(fn func(w http.ResponseWriter, r *http.Request, err error)) MiddlewareOption {
	return func(o *middlewareOptions) { o.onError = fn }
}

// Middleware rejects requests once the bucket for keyFunc(r) is empty.
// Requests with an empty key pass through unchecked.
func Middleware(limiter Limiter, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	o := middlewareOptions{
		onLimited: func(w http.ResponseWriter, _ *http.Request, _ *Result) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		},
		onError: func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		},
	}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			res, err := limiter.Allow(r.Context(), key)
			if err != nil {
				o.onError(w, r, err)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed() {
				if retry := int(res.RetryAfter().Seconds()); retry > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(retry))
				}
				o.onLimited(w, r, res)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
