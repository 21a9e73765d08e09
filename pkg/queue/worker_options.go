package queue

import (
	"log/slog"
	"time"
)

// WorkerOption configures a Worker.
type WorkerOption func(w *Worker, maxConcurrent *int)

// WithQueues sets the queues the worker pulls from.
func WithQueues(queues ...string) WorkerOption {
	return func(w *Worker, _ *int) {
		if len(queues) > 0 {
			w.queues = queues
		}
	}
}

// WithPullInterval sets how often the worker looks for due tasks.
func WithPullInterval(d time.Duration) WorkerOption {
	return func(w *Worker, _ *int) {
		if d > 0 {
			w.pullInterval = d
		}
	}
}

// WithLockTimeout sets how long a claimed task stays locked. It also bounds
// each handler call.
func WithLockTimeout(d time.Duration) WorkerOption {
	return func(w *Worker, _ *int) {
		if d > 0 {
			w.lockTimeout = d
		}
	}
}

// WithMaxConcurrentTasks caps the tasks processed at once.
func WithMaxConcurrentTasks(n int) WorkerOption {
	return func(_ *Worker, maxConcurrent *int) {
		if n > 0 {
			*maxConcurrent = n
		}
	}
}

// WithWorkerLogger sets the worker logger.
func WithWorkerLogger(l *slog.Logger) WorkerOption {
	return func(w *Worker, _ *int) {
		if l != nil {
			w.log = l
		}
	}
}

// WithConfig applies the worker fields of cfg.
func WithConfig(cfg Config) WorkerOption {
	return func(w *Worker, maxConcurrent *int) {
		WithPullInterval(cfg.PollInterval)(w, maxConcurrent)
		WithLockTimeout(cfg.LockTimeout)(w, maxConcurrent)
		WithMaxConcurrentTasks(cfg.MaxConcurrentTasks)(w, maxConcurrent)
	}
}
