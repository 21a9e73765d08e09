package queue

import "time"

// Config holds worker and retry settings.
type Config struct {
	PollInterval       time.Duration `env:"QUEUE_POLL_INTERVAL" envDefault:"1s"`
	LockTimeout        time.Duration `env:"QUEUE_LOCK_TIMEOUT" envDefault:"1m"`
	MaxConcurrentTasks int           `env:"QUEUE_MAX_CONCURRENT_TASKS" envDefault:"4"`
	MaxRetries         int8          `env:"QUEUE_MAX_RETRIES" envDefault:"5"`
	// RetryBackoff is multiplied by the retry count: 30s, 60s, 90s...
	RetryBackoff time.Duration `env:"QUEUE_RETRY_BACKOFF" envDefault:"30s"`
}
