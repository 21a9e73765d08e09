package contact

import (
	"fmt"
	"time"
)

// Backends for Config.Store.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Backends for Config.Archive.
const (
	ArchiveMemory   = "memory"
	ArchivePostgres = "postgres"
	ArchiveMongo    = "mongo"
)

// Config selects the service backends.
type Config struct {
	// StateTTL is how long an idle form is kept.
	StateTTL time.Duration `env:"CONTACT_STATE_TTL" envDefault:"24h"`
	// NotifyEmail receives a message per submission. Empty disables notifications.
	NotifyEmail string `env:"CONTACT_NOTIFY_EMAIL"`
	Store       string `env:"CONTACT_STORE" envDefault:"memory"`
	Archive     string `env:"CONTACT_ARCHIVE" envDefault:"memory"`
	// RecentLimit caps Recent when the caller passes no limit.
	RecentLimit int `env:"CONTACT_RECENT_LIMIT" envDefault:"20"`
}

// Validate checks backend names and bounds.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	}
	switch c.Archive {
	case ArchiveMemory, ArchivePostgres, ArchiveMongo:
	default:
		return fmt.Errorf("%w: unknown archive %q", ErrInvalidConfig, c.Archive)
	}
	if c.StateTTL <= 0 {
		return fmt.Errorf("%w: state ttl must be positive", ErrInvalidConfig)
	}
	if c.RecentLimit <= 0 {
		return fmt.Errorf("%w: recent limit must be positive", ErrInvalidConfig)
	}
	return nil
}
