// Package queue runs deferred tasks with retries and a dead letter queue.
//
// An Enqueuer stores JSON payloads as tasks; a Worker polls for due tasks and
// dispatches them to handlers registered by payload type:
//
//	storage := queue.NewMemoryStorage(queue.WithRetryBackoff(cfg.RetryBackoff))
//	defer storage.Close()
//
//	enq, _ := queue.NewEnqueuer(storage, queue.WithDefaultMaxRetries(cfg.MaxRetries))
//	w, _ := queue.NewWorker(storage, queue.WithConfig(cfg), queue.WithWorkerLogger(log))
//	w.RegisterHandlers(queue.NewTaskHandler(func(ctx context.Context, p WelcomeEmail) error {
//		return send(ctx, p)
//	}))
//	_ = w.Start(ctx)
//	defer w.Stop()
//
//	_ = enq.Enqueue(ctx, WelcomeEmail{To: "irving@example.com"})
//
// A failed task is retried after RetryCount times the backoff. When its
// retries are spent, or no handler matches its name, it moves to the dead
// letter queue.
package queue
