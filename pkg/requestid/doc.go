// Package requestid assigns a correlation id to every HTTP request.
//
// The middleware accepts an incoming X-Request-ID when it is made of letters,
// digits, dashes and underscores (at most 128 characters). Anything else is
// replaced with a fresh UUID. The id is echoed on the response and stored in
// the request context:
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	log.InfoContext(r.Context(), "form submitted") // carries request_id
package requestid
