package redis

import "time"

// Config describes how to reach redis.
type Config struct {
	// ConnectionURL has the form redis://:password@localhost:6379/0.
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	// KeyPrefix namespaces every key written by the application.
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"contactform:"`
}
