// Package logger builds the service's *slog.Logger.
//
// New takes functional options that pick the output format (text or json),
// the minimum level, static attributes and ContextExtractor callbacks. The
// resulting handler is wrapped by LogHandlerDecorator, which runs the
// extractors on every record so request-scoped values such as the request id
// end up in each log line without being threaded through call sites.
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Production, "contactform"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "contact form submitted",
//	    logger.FormID(formID),
//	    logger.SubmissionID(sub.ID),
//	)
//
// Attribute helpers (Error, RequestID, FormID, Field, ...) keep key names
// consistent; helpers for optional values return an empty slog.Attr, which
// slog drops, so callers can skip nil checks.
package logger
