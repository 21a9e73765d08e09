package queue

import "time"

// EnqueuerOption configures an Enqueuer.
type EnqueuerOption func(*Enqueuer)

// WithDefaultQueue sets the queue used when Enqueue gets no WithQueue.
func WithDefaultQueue(queue string) EnqueuerOption {
	return func(e *Enqueuer) {
		if queue != "" {
			e.defaultQueue = queue
		}
	}
}

// WithDefaultMaxRetries sets the retry budget of new tasks (0-10).
func WithDefaultMaxRetries(n int8) EnqueuerOption {
	return func(e *Enqueuer) {
		if n >= 0 && n <= 10 {
			e.maxRetries = n
		}
	}
}

// WithEnqueuerClock overrides the time source.
func WithEnqueuerClock(now func() time.Time) EnqueuerOption {
	return func(e *Enqueuer) {
		if now != nil {
			e.now = now
		}
	}
}

// EnqueueOption configures a single Enqueue call.
type EnqueueOption func(*enqueueOptions)

type enqueueOptions struct {
	queue      string
	maxRetries int8
	delay      time.Duration
	taskName   string
}

// WithQueue puts the task on queue.
func WithQueue(queue string) EnqueueOption {
	return func(o *enqueueOptions) {
		if queue != "" {
			o.queue = queue
		}
	}
}

// WithMaxRetries overrides the retry budget (0-10).
func WithMaxRetries(n int8) EnqueueOption {
	return func(o *enqueueOptions) {
		if n >= 0 && n <= 10 {
			o.maxRetries = n
		}
	}
}

// WithDelay holds the task back for d.
func WithDelay(d time.Duration) EnqueueOption {
	return func(o *enqueueOptions) {
		if d > 0 {
			o.delay = d
		}
	}
}

// WithTaskName overrides the payload-derived task name.
func WithTaskName(name string) EnqueueOption {
	return func(o *enqueueOptions) {
		if name != "" {
			o.taskName = name
		}
	}
}
