// Package httpserver runs an http.Handler with graceful shutdown.
//
// Run blocks until the context is cancelled, SIGINT/SIGTERM arrives or
// Shutdown is called. Shutdown drains in-flight requests within the
// configured timeout and then runs the shutdown hooks in reverse order, which
// is where connection pools get closed:
//
//	srv := httpserver.NewFromConfig(cfg.HTTP,
//	    httpserver.WithLogger(log),
//	    httpserver.WithShutdownHook(func(context.Context) error { pool.Close(); return nil }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server failed", logger.Error(err))
//	}
//
// LivenessHandler and ReadinessHandler provide probe endpoints; readiness
// takes named Check values and reports 503 when any of them fails.
//
// Errors are wrapped with ErrStart and ErrShutdown for errors.Is checks.
package httpserver
